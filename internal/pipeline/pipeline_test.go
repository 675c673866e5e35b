package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
	"github.com/wardwatch/tokyo-ward-stats/internal/observability"
)

// fakeFetcher serves canned observations per table and can fail one table.
type fakeFetcher struct {
	byTable  map[string][]domain.RawObservation
	failOn   string
	requests []string
}

func (f *fakeFetcher) GetStatsData(_ context.Context, tableID string, _, _ []string) ([]domain.RawObservation, error) {
	f.requests = append(f.requests, tableID)
	if tableID == f.failOn {
		return nil, errors.New("boom")
	}
	return f.byTable[tableID], nil
}

// fixtureFetcher fills every indicator for all 23 wards with distinct values
// so every ward makes it into the snapshot.
func fixtureFetcher() *fakeFetcher {
	byTable := make(map[string][]domain.RawObservation)
	for code, def := range domain.Indicators {
		for i, area := range domain.WardCodes() {
			byTable[def.TableID] = append(byTable[def.TableID], domain.RawObservation{
				Area:          area,
				IndicatorCode: code,
				Period:        "2020000000",
				Value:         fmt.Sprintf("%d", 1000+i*37),
			})
		}
	}
	// Extra census years for the trend series, including one before the cutoff.
	for _, period := range []string{"1995000000", "2000000000", "2015000000"} {
		byTable["0000020201"] = append(byTable["0000020201"], domain.RawObservation{
			Area: "13101", IndicatorCode: domain.CodeTotalPop, Period: period, Value: "900",
		})
	}
	return &fakeFetcher{byTable: byTable}
}

func newBuilder(f Fetcher, clock clockwork.Clock, delay time.Duration) *Builder {
	return New(f, slog.Default(), observability.NewMetricsForTesting(), clock, delay)
}

func TestBuild(t *testing.T) {
	fetcher := fixtureFetcher()
	builder := newBuilder(fetcher, clockwork.NewRealClock(), 0)

	snap, err := builder.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Wards, 23)

	t.Run("one request per table, sequential", func(t *testing.T) {
		assert.Len(t, fetcher.requests, 9)
		for i := 1; i < len(fetcher.requests); i++ {
			assert.Less(t, fetcher.requests[i-1], fetcher.requests[i])
		}
	})

	t.Run("ward order is ascending area code", func(t *testing.T) {
		codes := domain.WardCodes()
		for i, w := range snap.Wards {
			assert.Equal(t, codes[i], w.City.Code)
		}
	})

	t.Run("scores and rankings well formed", func(t *testing.T) {
		for _, w := range snap.Wards {
			for _, kind := range domain.CategoryKinds {
				assert.GreaterOrEqual(t, w.Scores.Get(kind), 0)
				assert.LessOrEqual(t, w.Scores.Get(kind), 100)
				assert.GreaterOrEqual(t, w.Rankings.Get(kind), 1)
				assert.LessOrEqual(t, w.Rankings.Get(kind), 23)
			}
		}
	})

	t.Run("trend series built from the population rows", func(t *testing.T) {
		trend := snap.Ward("13101").City.Population.Trend
		require.Len(t, trend, 3) // 2000, 2015, 2020; 1995 dropped
		assert.Equal(t, 2000, trend[0].Year)
		assert.Equal(t, 2020, trend[2].Year)
	})
}

func TestBuild_TransportErrorAborts(t *testing.T) {
	fetcher := fixtureFetcher()
	fetcher.failOn = "0000020209"
	builder := newBuilder(fetcher, clockwork.NewRealClock(), 0)

	snap, err := builder.Build(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.Contains(t, err.Error(), "0000020209")
}

func TestBuild_EmptySourceRefusesSnapshot(t *testing.T) {
	builder := newBuilder(&fakeFetcher{}, clockwork.NewRealClock(), 0)

	snap, err := builder.Build(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
}

func TestBuild_CourtesyDelayBetweenRequests(t *testing.T) {
	fetcher := fixtureFetcher()
	clock := clockwork.NewFakeClock()
	builder := newBuilder(fetcher, clock, 500*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := builder.Build(context.Background())
		done <- err
	}()

	// One pause per table; Build must not finish until each has elapsed.
	for i := 0; i < 9; i++ {
		select {
		case err := <-done:
			t.Fatalf("build finished after %d pauses: %v", i, err)
		default:
		}
		clock.BlockUntil(1)
		clock.Advance(500 * time.Millisecond)
	}

	require.NoError(t, <-done)
	assert.Len(t, fetcher.requests, 9)
}

func TestBuild_CancelledContext(t *testing.T) {
	fetcher := fixtureFetcher()
	builder := newBuilder(fetcher, clockwork.NewFakeClock(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := builder.Build(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fetcher.requests)
}
