package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/CyberAustin/AFSCbot/internal/app"
	"github.com/CyberAustin/AFSCbot/internal/config"
	"github.com/CyberAustin/AFSCbot/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.File)

	application := app.New(cfg, logger)

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
