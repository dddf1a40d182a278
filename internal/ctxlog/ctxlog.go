// Package ctxlog carries a slog.Logger through context.Context so that every
// pipeline stage logs to the logger configured at startup.
package ctxlog

import (
	"context"
	"io"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys defined
// in other packages.
type key struct{}

// loggerKey is the key under which the *slog.Logger is stored.
var loggerKey = key{}

// WithLogger returns a child context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from a context. If the context carries no
// logger, the process-wide default logger is returned so call sites never
// need to nil-check.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// Discard returns a logger that drops everything. Useful in tests that
// exercise code paths with debug tracing.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
