package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"campaign-server/internal/bootstrap"
	"campaign-server/internal/config"
	"campaign-server/internal/observability"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := observability.NewLogger()
	defer logger.Sync()
	ctx := context.Background()

	logger.Info(ctx, "Starting notification worker...")

	deps, err := bootstrap.InitializeWorker(cfg, logger)
	if errors.Is(err, bootstrap.ErrKafkaNotConfigured) {
		logger.Fatal(ctx, "notification worker requires Kafka", err)
	}
	if err != nil {
		logger.Fatal(ctx, "failed to initialize worker", err)
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start the status change consumer
	go func() {
		if err := deps.Consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(ctx, "notification consumer error", err)
			cancel()
		}
	}()

	logger.Info(ctx, "Notification worker started successfully")

	// Wait for a shutdown signal or a consumer failure
	select {
	case <-sigChan:
		logger.Info(ctx, "Received shutdown signal, stopping consumer...")
	case <-ctx.Done():
	}

	deps.Consumer.Stop()
	if err := deps.Store.Close(); err != nil {
		logger.Error(ctx, "failed to close database", err)
	}

	logger.Info(ctx, "Notification worker stopped")
}
