package colgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with colgo-specific context.
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

// WithElementSize adds an element byte-size field to the logger.
func (l *Logger) WithElementSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("element_size", size),
	}
}

// WithCapacity adds a capacity (element count) field to the logger.
func (l *Logger) WithCapacity(capacity int) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", capacity),
	}
}

// WithLen adds a length (element count) field to the logger.
func (l *Logger) WithLen(length int) *Logger {
	return &Logger{
		Logger: l.Logger.With("len", length),
	}
}

// LogFreeze logs a freeze conversion.
func (l *Logger) LogFreeze(lengthBytes, capacityBytes int) {
	l.Debug("buffer frozen",
		"len_bytes", lengthBytes,
		"capacity_bytes", capacityBytes,
	)
}

// LogRelease logs the final release of a frozen buffer's memory.
func (l *Logger) LogRelease(capacityBytes int, err error) {
	if err != nil {
		l.Error("buffer release failed",
			"capacity_bytes", capacityBytes,
			"error", err,
		)
	} else {
		l.Debug("buffer released",
			"capacity_bytes", capacityBytes,
		)
	}
}
