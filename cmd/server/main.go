package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/l1v0n1/ReviewBuddy/internal/app"
	"github.com/l1v0n1/ReviewBuddy/internal/config"
	"github.com/l1v0n1/ReviewBuddy/internal/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application failed to run", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, nil)
	slog.SetDefault(log)

	application, err := app.NewApp(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	log.Info("starting ReviewBuddy server")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return application.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		return application.Stop()
	})

	return g.Wait()
}
