package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/despensa-hq/despensa/internal/app"
	"github.com/despensa-hq/despensa/internal/config"
	"github.com/despensa-hq/despensa/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("server starting", "config", map[string]any{
		"app_name":    cfg.AppName,
		"env":         cfg.Env,
		"listen_addr": cfg.ListenAddr,
		"model":       cfg.GeminiModel,
		"storage":     cfg.StorageType,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runtime, err := app.NewServerRuntime(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize server", "error", err)
		return err
	}

	if err := runtime.Run(ctx); err != nil {
		return fmt.Errorf("server run: %w", err)
	}

	return nil
}
