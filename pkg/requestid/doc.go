// Package requestid tags every HTTP request served by botfilter with an id.
//
// Middleware reuses a well-formed X-Request-ID header from the caller or
// generates a UUID, stores it in the request context and echoes it in the
// response. LogExtractor plugs into logger.WithContextExtractors so every
// record logged with the request context carries request_id.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
