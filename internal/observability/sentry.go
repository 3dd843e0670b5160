package observability

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryConfig selects the error reporting project. An empty DSN disables
// reporting.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
}

// InitSentry initialises the global Sentry client. It returns a flush
// function that is safe to call when reporting is disabled.
func InitSentry(cfg SentryConfig, logger *slog.Logger) func() {
	noop := func() {}
	if cfg.DSN == "" {
		return noop
	}
	if logger == nil {
		logger = slog.Default()
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		AttachStacktrace: true,
	})
	if err != nil {
		logger.Warn("sentry initialization failed", "error", err)
		return noop
	}
	logger.Info("sentry initialized", "environment", cfg.Environment, "release", cfg.Release)
	return func() {
		sentry.Flush(2 * time.Second)
	}
}
