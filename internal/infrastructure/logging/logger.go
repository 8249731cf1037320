// Package logging provides structured logging utilities.
//
// Console logs are formatted in Maven-style with colors:
// [LEVEL] [STAGE] [HH:MM:SS] message key=value
package logging

import (
	"log/slog"
	"os"

	"github.com/retailops/sales-analytics/internal/infrastructure/config"
)

// NewLogger creates a structured logger based on config.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = NewConsoleHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// NewStageLogger creates a logger scoped to one pipeline stage (e.g.
// "ingest", "enrich", "api"), shown as a bracket prefix on every line.
func NewStageLogger(cfg config.LoggingConfig, stage string) *slog.Logger {
	return NewLogger(cfg).With("stage", stage)
}
