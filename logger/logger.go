// Package logger configures the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a *slog.Logger writing to os.Stderr and installs it as the
// default logger via slog.SetDefault.
//
// Format "json" produces structured JSON output. Any other format produces
// human-readable text with source locations. Level is one of debug, info,
// warn, error, case-insensitive; unknown levels fall back to info.
func New(level, format string) *slog.Logger {
	json := strings.EqualFold(format, "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: !json,
	}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
