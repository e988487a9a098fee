// Package logger provides the shared structured logger used by the SDK's
// I/O-facing components. The calculation core does not log.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	defaultOnce sync.Once
	defaultLog  *slog.Logger
)

// New creates a JSON logger at the given level.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Default returns the process-wide SDK logger, honoring MARGIN_SDK_LOG_LEVEL
// (debug, info, warn, error) on first use.
func Default() *slog.Logger {
	defaultOnce.Do(func() {
		defaultLog = New(levelFromEnv())
	})
	return defaultLog
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("MARGIN_SDK_LOG_LEVEL"))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
