// Command fetch pulls ward indicators from the e-Stat API, builds a fresh
// snapshot, and writes it to the snapshot file. Without an ESTAT_APP_ID it
// leaves an existing snapshot untouched rather than failing the run.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/wardwatch/tokyo-ward-stats/internal/adapter/estat"
	"github.com/wardwatch/tokyo-ward-stats/internal/config"
	"github.com/wardwatch/tokyo-ward-stats/internal/observability"
	"github.com/wardwatch/tokyo-ward-stats/internal/pipeline"
	"github.com/wardwatch/tokyo-ward-stats/internal/report"
	"github.com/wardwatch/tokyo-ward-stats/internal/snapshot"
)

func main() {
	xlsxPath := flag.String("xlsx", "", "also export the snapshot as an XLSX workbook at this path")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if cfg.EstatAppID == "" {
		if _, err := os.Stat(cfg.SnapshotPath); err == nil {
			logger.Warn("ESTAT_APP_ID not set, keeping existing snapshot", "path", cfg.SnapshotPath)
			return
		}
		logger.Error("ESTAT_APP_ID not set and no snapshot exists", "path", cfg.SnapshotPath)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := estat.NewClient(cfg.EstatAppID, cfg.EstatBaseURL, cfg.EstatTimeout, logger)
	builder := pipeline.New(client, logger, metrics, clockwork.NewRealClock(), cfg.FetchDelay)

	snap, err := builder.Build(ctx)
	if err != nil {
		logger.Error("snapshot build failed", "error", err)
		os.Exit(1)
	}

	if err := snapshot.Write(cfg.SnapshotPath, snap); err != nil {
		logger.Error("snapshot write failed", "path", cfg.SnapshotPath, "error", err)
		os.Exit(1)
	}
	logger.Info("snapshot written", "path", cfg.SnapshotPath, "wards", len(snap.Wards))

	if *xlsxPath != "" {
		if err := report.WriteFile(*xlsxPath, snap); err != nil {
			logger.Error("xlsx export failed", "path", *xlsxPath, "error", err)
			os.Exit(1)
		}
		logger.Info("xlsx report written", "path", *xlsxPath)
	}
}
