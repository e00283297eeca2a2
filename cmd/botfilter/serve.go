package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/botfilter/pkg/config"
	"github.com/dmitrymomot/botfilter/pkg/httpapi"
	"github.com/dmitrymomot/botfilter/pkg/httpserver"
	"github.com/dmitrymomot/botfilter/pkg/logger"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification HTTP API",
		Long: `Serves JSON classification endpoints, health probes and Prometheus metrics.
Server settings come from BOTFILTER_HTTP_* variables; --addr overrides the
listen address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, log, err := flags.loadClassifier(cmd)
			if err != nil {
				return err
			}

			var httpCfg httpserver.Config
			if err := config.Parse(&httpCfg); err != nil {
				return loadError{err}
			}
			if addr != "" {
				httpCfg.Addr = addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			router := httpapi.Router(c, httpapi.WithLogger(log), httpapi.WithRegistry(reg))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
			if err := srv.Run(ctx, router); err != nil {
				log.Error("http server failed", logger.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (BOTFILTER_HTTP_ADDR)")
	return cmd
}
