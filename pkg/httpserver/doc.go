// Package httpserver runs the botfilter HTTP service with graceful shutdown.
//
// Server.Run listens on the configured address and serves a handler until
// the context is cancelled, then calls http.Server.Shutdown bounded by the
// shutdown timeout. Serve does the same on a caller supplied listener.
// Config carries the BOTFILTER_HTTP_* environment settings.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// HealthCheckHandler provides liveness and readiness endpoints.
package httpserver
