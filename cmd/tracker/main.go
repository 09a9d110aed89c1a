package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rickgao/cryptotracker/internal/analysis"
	"github.com/rickgao/cryptotracker/internal/api"
	"github.com/rickgao/cryptotracker/internal/auth"
	"github.com/rickgao/cryptotracker/internal/config"
	"github.com/rickgao/cryptotracker/internal/logging"
	"github.com/rickgao/cryptotracker/internal/metrics"
	"github.com/rickgao/cryptotracker/internal/poller"
	"github.com/rickgao/cryptotracker/internal/sink"
	"github.com/rickgao/cryptotracker/internal/version"
)

func main() {
	if err := run(); err != nil {
		slog.Error("tracker failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup, including the sink
// close, happens on every path.
func run() error {
	configPath := config.Path()

	// Load configuration
	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging
	logger, logFile, err := logging.Setup(cfg.Log, os.Stdout)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logFile.Close()

	logger.Info("starting tracker",
		version.Attr(),
		"config", configPath,
	)
	logger.Info("configuration loaded",
		"provider", cfg.API.Provider,
		"api_url", cfg.API.BaseURL,
		"sink", cfg.Sink.Kind,
		"interval", cfg.Poller.Interval,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create fetcher
	creds, err := auth.LoadCredentials(api.KeyHeader(cfg.API.Provider), cfg.API.APIKey, cfg.API.APIKeyFile)
	if err != nil {
		return err
	}
	logger.Info("credentials loaded", "provider", cfg.API.Provider, "key", creds.String())
	client := api.NewClient(
		cfg.API.BaseURL,
		creds,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
	)
	fetcher, err := api.NewFetcher(cfg.API.Provider, client, api.ListingsOptions{
		Limit:    cfg.API.Limit,
		Currency: cfg.API.Currency,
	}, logger)
	if err != nil {
		return err
	}

	analyzer := analysis.New(analysis.Config{
		Variant:   cfg.Analysis.Variant,
		Rounding:  cfg.Analysis.Rounding,
		Precision: int32(cfg.Analysis.Places()),
	}, logger)

	// Open sink; closed on every exit path
	out, err := sink.New(ctx, cfg.Sink, logger)
	if err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			logger.Error("failed to close sink", "sink", out.Name(), "error", err)
		}
	}()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	p := poller.New(poller.Config{Interval: cfg.Poller.Interval}, fetcher, analyzer, out, m, logger)

	var server *http.Server
	if cfg.Metrics.Enabled {
		server = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler:           newHandler(p, registry, cfg.Metrics.Path),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("starting health server", "port", cfg.Metrics.Port)
			if err := server.ListenAndServe(); err != http.ErrServerClosed {
				logger.Error("health server error", "error", err)
			}
		}()
	}

	logger.Info("tracker running")

	// Blocks until shutdown
	p.Run(ctx)

	logger.Info("shutting down...")

	if server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		server.Shutdown(shutdownCtx)
	}

	logger.Info("tracker stopped")
	return nil
}
