// Command serve exposes the snapshot over HTTP and keeps it fresh by
// periodically re-reading the snapshot file.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wardwatch/tokyo-ward-stats/internal/adapter/httpapi"
	"github.com/wardwatch/tokyo-ward-stats/internal/config"
	"github.com/wardwatch/tokyo-ward-stats/internal/observability"
	"github.com/wardwatch/tokyo-ward-stats/internal/scheduler"
	"github.com/wardwatch/tokyo-ward-stats/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	st := store.New(cfg.SnapshotPath)
	if err := st.Reload(); err != nil {
		// Not fatal: the server starts unready and the scheduler keeps
		// retrying until a fetch produces the file.
		logger.Warn("initial snapshot load failed", "path", cfg.SnapshotPath, "error", err)
	} else {
		metrics.SnapshotReloads.WithLabelValues("success").Inc()
	}

	sched := scheduler.New(st, cfg.ReloadInterval, metrics, logger)
	if err := sched.Start(); err != nil {
		logger.Error("scheduler start failed", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := httpapi.NewServer(cfg.HTTPAddr, st, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
