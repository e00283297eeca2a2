// Package logger builds *slog.Logger values for the botfilter library and CLI.
//
// New takes functional options for level, format, output and static
// attributes, and wraps the chosen slog handler in LogHandlerDecorator so that
// ContextExtractor callbacks can add request-scoped attributes (for example
// the Verdict stored by the HTTP middleware) to every record.
//
// # Usage
//
//	import "github.com/dmitrymomot/botfilter/pkg/logger"
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "botfilter"),
//	    logger.WithContextExtractors(botfilter.LogExtractor),
//	)
//	log.InfoContext(ctx, "reference files loaded",
//	    logger.Count("exclude_records", n),
//	    logger.Duration(time.Since(start)),
//	)
//
// Level and format names coming from configuration are converted with
// ParseLevel and ParseFormat.
//
// Attribute helpers in attr.go keep key names consistent. Error, Errors,
// UserAgent and IP return an empty slog.Attr for nil or absent values, which
// slog drops, so callers need no nil checks.
package logger
