// Package app initializes and orchestrates the main components of the
// ReviewBuddy server: database, review pipeline, worker pool, and HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/l1v0n1/ReviewBuddy/internal/analysis"
	"github.com/l1v0n1/ReviewBuddy/internal/config"
	"github.com/l1v0n1/ReviewBuddy/internal/core"
	"github.com/l1v0n1/ReviewBuddy/internal/db"
	"github.com/l1v0n1/ReviewBuddy/internal/github"
	"github.com/l1v0n1/ReviewBuddy/internal/jobs"
	"github.com/l1v0n1/ReviewBuddy/internal/server"
	"github.com/l1v0n1/ReviewBuddy/internal/storage"
)

// App holds the main application components.
type App struct {
	cfg        *config.Config
	server     *server.Server
	logger     *slog.Logger
	dispatcher *jobs.Dispatcher
	closeDB    func()
}

// NewApp sets up the server application with all its dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.Info("initializing ReviewBuddy server",
		"port", cfg.ServerPort,
		"max_workers", cfg.MaxWorkers)

	dbConn, closeDB, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := storage.NewStore(dbConn.DB)

	// Server mode authenticates per event, as the GitHub App installation
	// that delivered the webhook.
	clients := func(ctx context.Context, event *core.ReviewEvent) (github.Client, error) {
		return github.CreateInstallationClient(ctx, cfg, event.InstallationID, logger)
	}

	analyzer := analysis.NewRunner(logger)
	reviewJob := jobs.NewReviewJob(cfg, clients, analyzer, logger, jobs.WithStore(store))
	dispatcher := jobs.NewDispatcher(reviewJob, cfg.MaxWorkers, logger)

	srv := server.NewServer(ctx, cfg, dispatcher, logger)

	return &App{
		cfg:        cfg,
		server:     srv,
		logger:     logger,
		dispatcher: dispatcher,
		closeDB:    closeDB,
	}, nil
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	return a.server.Start()
}

// Stop shuts down the server, drains the worker pool, and closes the
// database connection.
func (a *App) Stop() error {
	err := a.server.Stop()
	a.dispatcher.Stop()
	if a.closeDB != nil {
		a.closeDB()
	}
	return err
}
