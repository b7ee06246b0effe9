package cmd

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isometry/token-monitor/internal/config"
	"github.com/isometry/token-monitor/internal/runtime"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdService() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"s", "serve", "standalone", "server"},
		Short:   "Serve the dashboard snapshot and metrics over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger = logger.With("mode", config.ModeService)
			logger.Info("Spawning...")
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}

			logger.Debug("Creating runtime...")
			rt := runtime.NewRuntime(a.loader(),
				runtime.WithLogger(logger.With("component", "runtime")),
				runtime.WithRenderer(renderer()),
				runtime.WithFilters(dashboardFilters),
				runtime.WithCacheTTL(config.Refresh.Dashboard),
				runtime.WithGatherer(a.registry))

			logger.Debug("Creating HTTP server...")
			h := chi.NewRouter()
			h.Mount(config.Service.Path, rt)

			s := &http.Server{
				Handler:      h,
				Addr:         net.JoinHostPort(config.Service.Addr, config.Service.Port),
				WriteTimeout: config.Service.Timeout,
				ReadTimeout:  config.Service.Timeout,
				IdleTimeout:  config.Service.Timeout,
			}

			go func() {
				<-ctx.Done()
				logger.Info("Shutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.Service.Timeout)
				defer cancel()
				_ = s.Shutdown(shutdownCtx)
			}()

			logger.Info("Serving...", "address", s.Addr, "path", config.Service.Path, "timeout", config.Service.Timeout.String())
			if err = s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	return cmd
}
