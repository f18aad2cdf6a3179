package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/smartchef/skillet"
	"github.com/smartchef/skillet/pkg/adapters/httpapi"
	"github.com/smartchef/skillet/pkg/observability"
)

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	RunOptions
	Port string
}

// Serve starts the HTTP API and blocks until an interrupt or a listener
// error. Outstanding requests get a five second grace period on shutdown.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg, logger, err := setup(opts.RunOptions)
	if err != nil {
		return err
	}

	d := buildDeps(cfg, logger)
	defer d.cleanup()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewMetrics(registry)

	serverOpts := []httpapi.Option{
		httpapi.WithLogger(logger),
		httpapi.WithLifecycleHooks(metrics.Hooks()),
		httpapi.WithMetricsGatherer(registry),
		httpapi.WithStepOptions(stepOptions(cfg, logger)...),
		httpapi.WithVersion(skillet.Version),
	}
	if d.favorites != nil {
		serverOpts = append(serverOpts, httpapi.WithFavoriteStore(d.favorites))
	}

	server := httpapi.NewServer(metrics.InstrumentCompleter(d.completer), serverOpts...)

	srv := &http.Server{
		Addr:    ":" + opts.Port,
		Handler: server.Handler(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting skillet server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if closeErr := srv.Close(); closeErr != nil {
			return fmt.Errorf("error killing server: %w", closeErr)
		}
		return fmt.Errorf("graceful shutdown did not complete: %w", err)
	}
	logger.Info("skillet server stopped gracefully")
	return nil
}
