package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges shared by the
// fetch pipeline and the serving process.
type Metrics struct {
	// e-Stat fetch metrics.
	EstatRequests        *prometheus.CounterVec // labels: table, outcome={success,error,empty}
	EstatRequestDuration prometheus.Histogram

	// Collection metrics.
	ObservationsCollected prometheus.Counter
	ObservationsDropped   prometheus.Counter
	AreasExcluded         prometheus.Counter

	// Snapshot metrics.
	SnapshotBuildDuration prometheus.Histogram
	SnapshotWards         prometheus.Gauge
	SnapshotReloads       *prometheus.CounterVec // labels: outcome={success,error}

	// Serving metrics.
	ScoreRecomputes prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		EstatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ward_stats",
			Name:      "estat_requests_total",
			Help:      "e-Stat API requests by statistics table and outcome.",
		}, []string{"table", "outcome"}),
		EstatRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ward_stats",
			Name:      "estat_request_duration_seconds",
			Help:      "e-Stat API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ObservationsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ward_stats",
			Name:      "observations_collected_total",
			Help:      "Raw observations accepted into the indicator table.",
		}),
		ObservationsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ward_stats",
			Name:      "observations_dropped_total",
			Help:      "Raw observations dropped for unparseable values.",
		}),
		AreasExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ward_stats",
			Name:      "areas_excluded_total",
			Help:      "Wards excluded from a snapshot for having no data at all.",
		}),
		SnapshotBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ward_stats",
			Name:      "snapshot_build_duration_seconds",
			Help:      "Duration of a complete fetch-collect-build cycle.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
		SnapshotWards: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ward_stats",
			Name:      "snapshot_wards",
			Help:      "Ward count in the most recent snapshot.",
		}),
		SnapshotReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ward_stats",
			Name:      "snapshot_reloads_total",
			Help:      "Snapshot file reloads by outcome.",
		}, []string{"outcome"}),
		ScoreRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ward_stats",
			Name:      "score_recomputes_total",
			Help:      "Per-capita score recomputations served.",
		}),
	}

	prometheus.MustRegister(
		m.EstatRequests,
		m.EstatRequestDuration,
		m.ObservationsCollected,
		m.ObservationsDropped,
		m.AreasExcluded,
		m.SnapshotBuildDuration,
		m.SnapshotWards,
		m.SnapshotReloads,
		m.ScoreRecomputes,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		EstatRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ward_stats", Name: "estat_requests_total"}, []string{"table", "outcome"}),
		EstatRequestDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ward_stats", Name: "estat_request_duration_seconds"}),
		ObservationsCollected: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ward_stats", Name: "observations_collected_total"}),
		ObservationsDropped:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ward_stats", Name: "observations_dropped_total"}),
		AreasExcluded:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ward_stats", Name: "areas_excluded_total"}),
		SnapshotBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ward_stats", Name: "snapshot_build_duration_seconds"}),
		SnapshotWards:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ward_stats", Name: "snapshot_wards"}),
		SnapshotReloads:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ward_stats", Name: "snapshot_reloads_total"}, []string{"outcome"}),
		ScoreRecomputes:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ward_stats", Name: "score_recomputes_total"}),
	}
}
