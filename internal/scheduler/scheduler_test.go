package scheduler_test

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardwatch/tokyo-ward-stats/internal/observability"
	"github.com/wardwatch/tokyo-ward-stats/internal/scheduler"
)

type countingReloader struct {
	calls atomic.Int64
	err   error
	ran   chan struct{}
}

func (r *countingReloader) Reload() error {
	if r.calls.Add(1) == 1 {
		close(r.ran)
	}
	return r.err
}

func TestSchedulerReloadsPeriodically(t *testing.T) {
	reloader := &countingReloader{ran: make(chan struct{})}
	s := scheduler.New(reloader, 10*time.Millisecond, observability.NewMetricsForTesting(), slog.Default())

	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case <-reloader.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("reload job never ran")
	}
}

func TestSchedulerKeepsRunningAfterFailedReload(t *testing.T) {
	reloader := &countingReloader{ran: make(chan struct{}), err: errors.New("file missing")}
	s := scheduler.New(reloader, 10*time.Millisecond, observability.NewMetricsForTesting(), slog.Default())

	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case <-reloader.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("reload job never ran")
	}

	// Another reload still happens after the failure.
	assert.Eventually(t, func() bool {
		return reloader.calls.Load() >= 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	reloader := &countingReloader{ran: make(chan struct{})}
	s := scheduler.New(reloader, time.Minute, observability.NewMetricsForTesting(), slog.Default())

	require.NoError(t, s.Start())
	s.Stop()
	s.Stop()
}
