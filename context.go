package botfilter

import (
	"context"
	"log/slog"
)

type verdictContextKey struct{}

// SetVerdictToContext stores a verdict in ctx.
func SetVerdictToContext(ctx context.Context, v Verdict) context.Context {
	return context.WithValue(ctx, verdictContextKey{}, v)
}

// GetVerdictFromContext returns the verdict stored by the middleware, if any.
func GetVerdictFromContext(ctx context.Context) (Verdict, bool) {
	v, ok := ctx.Value(verdictContextKey{}).(Verdict)
	return v, ok
}

// LogExtractor adds the request verdict to log records.
// It satisfies logger.ContextExtractor.
func LogExtractor(ctx context.Context) (slog.Attr, bool) {
	v, ok := GetVerdictFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.Any("verdict", v), true
}
