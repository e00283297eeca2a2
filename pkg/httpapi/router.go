package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/botfilter"
	"github.com/dmitrymomot/botfilter/pkg/httpserver"
	"github.com/dmitrymomot/botfilter/pkg/logger"
	"github.com/dmitrymomot/botfilter/pkg/requestid"
)

// Body limits. A batch may carry MaxBatchSize requests of up to
// maxRequestBytes each.
const (
	maxRequestBytes = 16 << 10
	maxBatchBytes   = MaxBatchSize * maxRequestBytes
)

// Option configures the router.
type Option func(*api)

// WithLogger sets the request logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *api) {
		if l != nil {
			a.log = l
		}
	}
}

// WithRegistry exposes reg on /metrics and registers the caller
// classification counters on it.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *api) { a.registry = reg }
}

// WithClock sets the time used when a request has no "at". Nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(a *api) {
		if now != nil {
			a.now = now
		}
	}
}

type api struct {
	classifier *botfilter.Classifier
	log        *slog.Logger
	registry   *prometheus.Registry
	now        func() time.Time
}

// Router returns the HTTP API of a classifier:
//
//	GET  /v1/classify?ua=&ip=&at=  classify one request
//	POST /v1/classify              classify one Request (JSON body)
//	POST /v1/classify/batch        classify up to MaxBatchSize Requests
//	GET  /v1/self                  classify the calling client itself
//	GET  /v1/stats                 reference data sizes
//	GET  /health/live, /health/ready
//	GET  /metrics                  when WithRegistry is set
func Router(c *botfilter.Classifier, opts ...Option) chi.Router {
	a := &api{
		classifier: c,
		log:        logger.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.HealthCheckHandler(a.log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(a.log, a.ready))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/classify", a.classifyQuery)
		r.Post("/classify", a.classifyBody)
		r.Post("/classify/batch", a.classifyBatch)
		r.Get("/stats", a.stats)

		selfOpts := []botfilter.MiddlewareOption{botfilter.WithMiddlewareLogger(a.log)}
		if a.registry != nil {
			selfOpts = append(selfOpts, botfilter.WithMetrics(a.registry))
		}
		r.With(botfilter.Middleware(c, selfOpts...)).Get("/self", a.self)
	})

	if a.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}
	return r
}

func (a *api) ready(context.Context) error {
	if a.classifier == nil {
		return errors.New("classifier is not loaded")
	}
	return nil
}

func (a *api) classifyQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a.respond(w, r, Request{UserAgent: q.Get("ua"), IP: q.Get("ip"), At: q.Get("at")})
}

func (a *api) classifyBody(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := decodeJSON(w, r, &req, maxRequestBytes); err != nil {
		a.writeError(w, r, bodyErrorStatus(err), err)
		return
	}
	a.respond(w, r, req)
}

func (a *api) respond(w http.ResponseWriter, r *http.Request, req Request) {
	v, err := a.classify(req)
	if err != nil {
		a.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (a *api) classifyBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []Request
	if err := decodeJSON(w, r, &reqs, maxBatchBytes); err != nil {
		a.writeError(w, r, bodyErrorStatus(err), err)
		return
	}
	if len(reqs) > MaxBatchSize {
		a.writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(reqs), MaxBatchSize))
		return
	}

	results := make([]Result, len(reqs))
	for i, req := range reqs {
		v, err := a.classify(req)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		results[i].Verdict = &v
	}
	writeJSON(w, http.StatusOK, results)
}

func (a *api) self(w http.ResponseWriter, r *http.Request) {
	v, ok := botfilter.GetVerdictFromContext(r.Context())
	if !ok {
		a.writeError(w, r, http.StatusBadRequest, botfilter.ErrInvalidArgument)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (a *api) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.classifier.Stats())
}

func (a *api) classify(req Request) (botfilter.Verdict, error) {
	addr, at, err := req.parse(a.now(), a.classifier.Location())
	if err != nil {
		return botfilter.Verdict{}, err
	}
	return a.classifier.ClassifyAt(req.UserAgent, addr, at)
}

func (a *api) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	ctx := r.Context()
	a.log.DebugContext(ctx, "request rejected",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		logger.Error(err),
	)
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: requestid.FromContext(ctx)})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, limit int64) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// bodyErrorStatus maps a decodeJSON error to a response status.
func bodyErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
