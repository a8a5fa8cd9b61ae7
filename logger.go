package idxarena

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with idxarena-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithName adds a container name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// LogGrow logs a storage growth step of an arena or sparse map.
func (l *Logger) LogGrow(ctx context.Context, kind string, segments, capacity int) {
	l.DebugContext(ctx, "storage grown",
		"kind", kind,
		"segments", segments,
		"capacity", capacity,
	)
}

// LogCapacityExceeded logs an allocation rejected because the index space is full.
func (l *Logger) LogCapacityExceeded(ctx context.Context, kind string, length int, err error) {
	l.ErrorContext(ctx, "allocation failed",
		"kind", kind,
		"len", length,
		"error", err,
	)
}
