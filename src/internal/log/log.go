// Package log provides context-scoped structured logging on top of zap, in
// the shape pachyderm's internal/log package uses (ctx-first, zap.Field
// variadics) trimmed down to what this module needs.
package log

import (
	"context"

	"go.uber.org/zap"
)

// Field is an alias so callers don't need to import zap directly.
type Field = zap.Field

type loggerKey struct{}

// NewContext returns a context carrying logger, retrievable with From.
func NewContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// From returns the logger attached to ctx, or a no-op logger if none was
// attached. Library code should always go through From rather than holding
// onto a *zap.Logger directly, so callers who never configure logging never
// pay for it and never see output they didn't ask for.
func From(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// Info logs at info level using the logger attached to ctx.
func Info(ctx context.Context, msg string, fields ...Field) {
	From(ctx).Info(msg, fields...)
}

// Debug logs at debug level using the logger attached to ctx.
func Debug(ctx context.Context, msg string, fields ...Field) {
	From(ctx).Debug(msg, fields...)
}

// Error logs at error level using the logger attached to ctx.
func Error(ctx context.Context, msg string, fields ...Field) {
	From(ctx).Error(msg, fields...)
}
