package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"photokeeper/internal/client/cli"
	"photokeeper/internal/client/config"
	"photokeeper/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; a missing file is fine.
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logger := logging.NewDefault(os.Stderr, slog.LevelWarn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
