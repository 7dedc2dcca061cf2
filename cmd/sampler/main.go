package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"colorize/internal/app"
	"colorize/internal/config"
	"colorize/internal/logger"
	"colorize/internal/service/capture"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger(cfg)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(cfg, logger, nil, capture.Open)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	runErr := application.Run(ctx)
	if err := application.Close(); err != nil {
		logger.Error("Failed to close %s: %v", cfg.OutputPath, err)
	}
	if runErr != nil {
		logger.Error("Job failed: %v", runErr)
		log.Fatalf("Job failed: %v", runErr)
	}
}
