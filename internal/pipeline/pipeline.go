// Package pipeline orchestrates one snapshot build: sequential rate-limited
// fetches from the statistics source, collection into the indicator table,
// and ward record assembly.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
	"github.com/wardwatch/tokyo-ward-stats/internal/observability"
)

// Fetcher reads raw observations for one statistics table.
type Fetcher interface {
	GetStatsData(ctx context.Context, tableID string, indicatorCodes, areaCodes []string) ([]domain.RawObservation, error)
}

// Builder runs the fetch-collect-build cycle that produces a snapshot.
type Builder struct {
	fetcher   Fetcher
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	delay     time.Duration
	areaCodes []string
}

// New creates a Builder. delay is the courtesy pause before each request to
// the statistics source; the clock makes it testable.
func New(fetcher Fetcher, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, delay time.Duration) *Builder {
	return &Builder{
		fetcher:   fetcher,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
		delay:     delay,
		areaCodes: domain.WardCodes(),
	}
}

// Build fetches every indicator table sequentially, never in parallel, and
// assembles the full snapshot. Any transport failure aborts the build; no
// partial snapshot is returned. Empty tables and unparseable values are
// logged and skipped.
func (b *Builder) Build(ctx context.Context) (*domain.Snapshot, error) {
	start := time.Now()

	groups := domain.TableGroups()
	tableIDs := make([]string, 0, len(groups))
	for id := range groups {
		tableIDs = append(tableIDs, id)
	}
	sort.Strings(tableIDs)

	var observations []domain.RawObservation
	for _, tableID := range tableIDs {
		if err := b.pause(ctx); err != nil {
			return nil, err
		}

		codes := groups[tableID]
		b.logger.Info("fetching table", "table", tableID, "codes", len(codes))

		reqStart := time.Now()
		rows, err := b.fetcher.GetStatsData(ctx, tableID, codes, b.areaCodes)
		b.metrics.EstatRequestDuration.Observe(time.Since(reqStart).Seconds())
		if err != nil {
			b.metrics.EstatRequests.WithLabelValues(tableID, "error").Inc()
			return nil, fmt.Errorf("fetch table %s: %w", tableID, err)
		}
		if len(rows) == 0 {
			b.metrics.EstatRequests.WithLabelValues(tableID, "empty").Inc()
			continue
		}
		b.metrics.EstatRequests.WithLabelValues(tableID, "success").Inc()
		observations = append(observations, rows...)
	}

	table, dropped := domain.Collect(observations)
	b.metrics.ObservationsCollected.Add(float64(len(observations) - dropped))
	b.metrics.ObservationsDropped.Add(float64(dropped))
	if dropped > 0 {
		b.logger.Warn("dropped unparseable observations", "count", dropped)
	}

	// The population table response carries every census year per pair, so
	// the trend series comes from the same rows with no extra request.
	trends := domain.BuildTrendSeries(filterByCode(observations, domain.CodeTotalPop))

	snap, missing := domain.BuildSnapshot(table, trends, b.areaCodes)
	for _, code := range missing {
		b.logger.Warn("ward has no data, excluded from snapshot", "area", code, "name", domain.WardNames[code])
	}
	b.metrics.AreasExcluded.Add(float64(len(missing)))

	if len(snap.Wards) == 0 {
		return nil, errors.New("no ward produced any data; refusing to build an empty snapshot")
	}

	b.metrics.SnapshotWards.Set(float64(len(snap.Wards)))
	b.metrics.SnapshotBuildDuration.Observe(time.Since(start).Seconds())
	b.logger.Info("snapshot built",
		"wards", len(snap.Wards),
		"excluded", len(missing),
		"observations", len(observations)-dropped,
		"generated_at", snap.GeneratedAt,
	)
	return snap, nil
}

// pause sleeps for the courtesy delay, honoring cancellation.
func (b *Builder) pause(ctx context.Context) error {
	if b.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.clock.After(b.delay):
		return nil
	}
}

func filterByCode(observations []domain.RawObservation, code string) []domain.RawObservation {
	var out []domain.RawObservation
	for _, obs := range observations {
		if obs.IndicatorCode == code {
			out = append(out, obs)
		}
	}
	return out
}
