package phastar

import (
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/phastar/model"
)

// Logger wraps slog.Logger with phastar-specific helpers.
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
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithJob adds a job index field to the logger.
func (l *Logger) WithJob(index int) *Logger {
	return &Logger{
		Logger: l.Logger.With("job", index),
	}
}

// LogSearch logs the outcome of one search job.
func (l *Logger) LogSearch(index int, outcome model.Outcome, duration time.Duration, err error) {
	if err != nil {
		l.Error("search failed",
			"job", index,
			"error", err,
		)
		return
	}
	l.Debug("search completed",
		"job", index,
		"solved", outcome.Solved,
		"expansions", outcome.Expansions,
		"generated", outcome.Generated,
		"duration", duration,
	)
}

// LogSolve logs the completion of a Solve call.
func (l *Logger) LogSolve(jobs, solved int, duration time.Duration) {
	l.Info("solve completed",
		"jobs", jobs,
		"solved", solved,
		"duration", duration,
	)
}
