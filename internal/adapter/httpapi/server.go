// Package httpapi exposes the dashboard's read API alongside health,
// readiness, and metrics endpoints.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wardwatch/tokyo-ward-stats/internal/chart"
	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
	"github.com/wardwatch/tokyo-ward-stats/internal/observability"
)

// SnapshotSource provides the current snapshot to serve. Implemented by
// store.Store.
type SnapshotSource interface {
	Snapshot() (*domain.Snapshot, bool)
	CheckReadiness() error
}

// Server serves ward data from the snapshot store.
type Server struct {
	httpServer *http.Server
	source     SnapshotSource
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the ward API plus /healthz, /readyz,
// and /metrics routes.
func NewServer(addr string, source SnapshotSource, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source:  source,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/wards", s.handleWards)
	mux.HandleFunc("GET /api/wards/{code}", s.handleWard)
	mux.HandleFunc("GET /api/wards/{code}/scores", s.handleWardScores)
	mux.HandleFunc("GET /api/wards/{code}/trend.png", s.handleWardTrend)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if err := s.source.CheckReadiness(); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "not ready", "error": err.Error()})
		return
	}
	s.writeJSON(w, map[string]string{"status": "ready"})
}

func (s *Server) handleWards(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.source.Snapshot()
	if !ok {
		http.Error(w, "snapshot not loaded", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, snap)
}

func (s *Server) handleWard(w http.ResponseWriter, r *http.Request) {
	_, ward, ok := s.lookupWard(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, ward)
}

// scoresResponse carries per-capita scores when they can be recomputed from
// the snapshot, falling back to the persisted deviation scores otherwise.
type scoresResponse struct {
	Scores      domain.ScoreSet `json:"scores"`
	Avg23Scores domain.ScoreSet `json:"avg23Scores"`
	Method      string          `json:"method"`
}

func (s *Server) handleWardScores(w http.ResponseWriter, r *http.Request) {
	snap, ward, ok := s.lookupWard(w, r)
	if !ok {
		return
	}

	var scorer domain.PerCapitaScorer
	resp := scoresResponse{
		Scores:      ward.Scores,
		Avg23Scores: snap.Avg23Scores,
		Method:      "deviation",
	}
	if scores, ok := scorer.ScoresOK(snap.Wards, ward.City.Code); ok {
		s.metrics.ScoreRecomputes.Inc()
		resp = scoresResponse{
			Scores:      scores,
			Avg23Scores: scorer.Avg23Scores(),
			Method:      "perCapita",
		}
	}
	s.writeJSON(w, resp)
}

func (s *Server) handleWardTrend(w http.ResponseWriter, r *http.Request) {
	_, ward, ok := s.lookupWard(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.TrendPNG(&buf, ward.City.Name, ward.City.Population.Trend); err != nil {
		s.logger.Error("trend chart failed", "code", ward.City.Code, "error", err)
		http.Error(w, "no trend data", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("writing trend chart failed", "code", ward.City.Code, "error", err)
	}
}

func (s *Server) lookupWard(w http.ResponseWriter, r *http.Request) (*domain.Snapshot, *domain.WardRecord, bool) {
	snap, ok := s.source.Snapshot()
	if !ok {
		http.Error(w, "snapshot not loaded", http.StatusServiceUnavailable)
		return nil, nil, false
	}
	code := r.PathValue("code")
	ward := snap.Ward(code)
	if ward == nil {
		http.Error(w, fmt.Sprintf("unknown ward %q", code), http.StatusNotFound)
		return nil, nil, false
	}
	return snap, ward, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response failed", "error", err)
	}
}
