package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/meal-planner/internal/app/auth"
	"github.com/magabrotheeeer/meal-planner/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if cfg.Env != "local" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	logger.Info("starting auth-service", slog.String("env", cfg.Env))

	if cfg.GRPCAuthAddress == "" {
		logger.Error("grpc_auth_address is empty")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := auth.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize auth-service", slog.Any("err", err))
		os.Exit(1)
	}
	if err := app.Run(ctx); err != nil {
		logger.Error("auth-service stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("auth-service stopped gracefully")
}
