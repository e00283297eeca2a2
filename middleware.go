package botfilter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/botfilter/pkg/clientip"
	"github.com/dmitrymomot/botfilter/pkg/logger"
)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	log          *slog.Logger
	headers      []string
	rejectStatus int
	counter      *prometheus.CounterVec
	skipped      prometheus.Counter
}

// WithMiddlewareLogger sets the logger for skipped and rejected requests.
func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTrustedHeaders replaces the proxy headers consulted for the client
// address. No headers means RemoteAddr only.
func WithTrustedHeaders(headers ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.headers = headers
	}
}

// WithRejectSpiders answers spider and robot requests with status instead of
// calling the next handler.
func WithRejectSpiders(status int) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.rejectStatus = status
	}
}

// WithMetrics registers classification counters on reg.
// Labels: reason, category. Middlewares sharing a registry share the counters.
func WithMetrics(reg prometheus.Registerer) MiddlewareOption {
	return func(c *middlewareConfig) {
		if reg == nil {
			return
		}
		c.counter = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "botfilter",
			Name:      "classifications_total",
			Help:      "Requests classified, by verdict reason and category",
		}, []string{"reason", "category"}))
		c.skipped = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "botfilter",
			Name:      "classifications_skipped_total",
			Help:      "Requests with neither a user agent nor a client address",
		}))
	}
}

// register adds col to reg, returning the collector already registered
// under the same descriptor if there is one.
func register[T prometheus.Collector](reg prometheus.Registerer, col T) T {
	err := reg.Register(col)
	if err == nil {
		return col
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	panic(err)
}

// Middleware classifies each request and stores the Verdict in its context.
// Requests that carry neither a user agent nor a resolvable address pass
// through without a verdict.
func Middleware(c *Classifier, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		log:     logger.Discard(),
		headers: clientip.DefaultHeaders,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ua := r.UserAgent()
			addr := clientip.GetAddrFrom(r, cfg.headers...)

			v, err := c.Classify(ua, addr)
			if err != nil {
				if cfg.skipped != nil {
					cfg.skipped.Inc()
				}
				cfg.log.DebugContext(ctx, "request not classified", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if cfg.counter != nil {
				cfg.counter.WithLabelValues(string(v.Reason), string(v.Category)).Inc()
			}

			if v.SpiderOrRobot && cfg.rejectStatus > 0 {
				cfg.log.InfoContext(ctx, "spider rejected",
					logger.UserAgent(ua),
					logger.IP(addr),
					slog.Any("verdict", v),
				)
				http.Error(w, http.StatusText(cfg.rejectStatus), cfg.rejectStatus)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetVerdictToContext(ctx, v)))
		})
	}
}
