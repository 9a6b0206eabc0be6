package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pingcheck/pingcheck/internal/config"
	"github.com/pingcheck/pingcheck/internal/logging"
	"github.com/pingcheck/pingcheck/internal/metrics"
	"github.com/pingcheck/pingcheck/internal/pingfederate"
)

func runServe() {
	flags := config.ParseFlags()

	cfg, err := config.LoadWithFlags(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	collector, metricsServer := metrics.New(metrics.Config{
		Enabled: cfg.Metrics.Enabled,
		Address: cfg.Metrics.Address,
		Path:    cfg.Metrics.Path,
	})
	if cfg.Metrics.Enabled {
		go func() {
			if err := metricsServer.Start(ctx); err != nil && err != context.Canceled {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	client, err := pingfederate.NewClient(
		cfg.Provider.Endpoint,
		cfg.Provider.ClientID,
		cfg.Provider.ClientSecret,
		pingfederate.WithTimeout(cfg.Provider.RequestTimeout()),
		pingfederate.WithCollector(collector),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating introspection client: %v\n", err)
		os.Exit(1)
	}

	validator := pingfederate.NewValidator(client, collector, logger)

	logger.Info("starting pingcheckd",
		"listen", cfg.Listen,
		"endpoint", cfg.Provider.Endpoint,
		"metrics", cfg.Metrics.Enabled)

	api := &http.Server{
		Addr:    cfg.Listen,
		Handler: newRouter(validator, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := api.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := api.Shutdown(shutdownCtx); err != nil {
			logger.Error("api shutdown error", "error", err)
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics shutdown error", "error", err)
		}
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}
}
