// Package ctxlog carries a slog.Logger through context.Context so every
// stage of the batch pipeline logs through the same configured handler.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported to keep this context key collision-free.
type key struct{}

var loggerKey = key{}

// WithLogger returns a context carrying the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger, falling back to slog.Default when the
// context carries none (bare contexts in tests).
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
