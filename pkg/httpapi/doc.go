// Package httpapi exposes a botfilter Classifier over HTTP.
//
// Router builds a chi router with request ids, panic recovery, JSON
// classification endpoints, health probes and an optional Prometheus
// /metrics endpoint. The /v1/self endpoint runs the classifier middleware on
// the caller, which is handy for checking what a proxy chain forwards.
//
//	srv := httpserver.New(httpserver.WithAddr(":8080"))
//	err := srv.Run(ctx, httpapi.Router(classifier, httpapi.WithLogger(log)))
package httpapi
