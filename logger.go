package flatfa

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with flatfa-specific context.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000), // Unreachable level
		})),
	}
}

// WithSource adds the FASTA source path to the logger.
func (l *Logger) WithSource(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", path),
	}
}

// WithBackend adds the backend name to the logger.
func (l *Logger) WithBackend(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("backend", name),
	}
}

// LogOpen logs the outcome of Open.
func (l *Logger) LogOpen(ctx context.Context, sequences int, reused bool, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "open completed",
		"sequences", sequences,
		"reused", reused,
		"duration", d,
	)
}

// LogRebuild logs that the sidecars are rebuilt and why.
func (l *Logger) LogRebuild(ctx context.Context, reason string) {
	l.InfoContext(ctx, "rebuilding index",
		"reason", reason,
	)
}

// LogSplit logs the outcome of a split.
func (l *Logger) LogSplit(ctx context.Context, strategy string, files, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "split failed",
			"strategy", strategy,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "split completed",
		"strategy", strategy,
		"files", files,
		"records", records,
	)
}
