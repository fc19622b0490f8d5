package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"InsightsFeeder/internal/app"
	"InsightsFeeder/internal/config"
	"InsightsFeeder/internal/logging"
)

func main() {
	_ = godotenv.Load(".env")

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	application := app.New(cfg, logger)

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
