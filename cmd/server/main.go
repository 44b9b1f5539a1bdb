package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vivass/storefront/pkg/logger"
	"github.com/vivass/storefront/pkg/tracing"

	"github.com/vivass/storefront/internal/app"
	"github.com/vivass/storefront/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize structured logger.
	log := logger.New("storefront", cfg.LogLevel)
	log.Info("starting storefront",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.HTTPPort),
	)

	// Create a context that is canceled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize tracing. A disabled config yields a no-op shutdown.
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingCfg.OTLPEndpoint = cfg.OTLPEndpoint
	tracingCfg.SampleRate = cfg.TraceSampleRate
	tracingCfg.Environment = cfg.Environment

	shutdownTracer, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}()

	// Create the application with all dependencies wired.
	application, err := app.NewApp(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	// Run the application. This blocks until shutdown.
	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("run application: %w", err)
	}

	log.Info("storefront stopped")
	return nil
}
