package requestid

import (
	"context"
	"log/slog"
)

// LogExtractor adds request_id to log records. It satisfies logger.ContextExtractor.
func LogExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := FromContext(ctx); id != "" {
		return slog.String("request_id", id), true
	}
	return slog.Attr{}, false
}
