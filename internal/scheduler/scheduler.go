// Package scheduler periodically reloads the snapshot file into the store so
// a running server picks up fresh fetches without a restart.
package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/wardwatch/tokyo-ward-stats/internal/observability"
)

// Reloader is the store operation the scheduler drives.
type Reloader interface {
	Reload() error
}

// Scheduler re-reads the snapshot file on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Reloader
	interval  time.Duration
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// New creates a Scheduler reloading store every interval.
func New(store Reloader, interval time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		interval:  interval,
		metrics:   metrics,
		logger:    logger,
	}
}

// Start schedules the periodic reload job and starts the underlying
// scheduler. A failed reload keeps the previously served snapshot.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		if err := s.store.Reload(); err != nil {
			s.metrics.SnapshotReloads.WithLabelValues("error").Inc()
			s.logger.Warn("snapshot reload failed, keeping previous", "error", err)
			return
		}
		s.metrics.SnapshotReloads.WithLabelValues("success").Inc()
		s.logger.Info("snapshot reloaded")
	})
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
