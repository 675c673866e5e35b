package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings for the fetch pipeline and the serving process,
// populated from environment variables.
type Config struct {
	// e-Stat access.
	EstatAppID   string
	EstatBaseURL string
	EstatTimeout time.Duration

	// FetchDelay is the courtesy pause between consecutive e-Stat requests.
	FetchDelay time.Duration

	SnapshotPath string

	HTTPAddr        string
	ReloadInterval  time.Duration
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env.local or .env file in the working directory is loaded first,
// best effort; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	estatTimeout, err := parseDuration("ESTAT_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	fetchDelay, err := parseDuration("FETCH_DELAY", "500ms")
	if err != nil {
		return nil, err
	}
	reloadInterval, err := parseDuration("RELOAD_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		EstatAppID:   os.Getenv("ESTAT_APP_ID"),
		EstatBaseURL: envOrDefault("ESTAT_BASE_URL", "https://api.e-stat.go.jp/rest/3.0/app/json"),
		EstatTimeout: estatTimeout,

		FetchDelay: fetchDelay,

		SnapshotPath: envOrDefault("SNAPSHOT_PATH", "data/wards.json"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ReloadInterval:  reloadInterval,
		ShutdownTimeout: shutdownTimeout,

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),
	}

	if cfg.EstatBaseURL == "" {
		return nil, errors.New("ESTAT_BASE_URL is required")
	}
	if cfg.SnapshotPath == "" {
		return nil, errors.New("SNAPSHOT_PATH is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseDuration reads a positive duration from the environment.
func parseDuration(key, def string) (time.Duration, error) {
	raw := envOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}
