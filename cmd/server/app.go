package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/focus-api/internal/config"
	"github.com/phrazzld/focus-api/internal/platform/backend"
	"github.com/phrazzld/focus-api/internal/service/auth"
	"github.com/phrazzld/focus-api/internal/service/focus"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	backend *backend.Backend

	jwtService   auth.JWTService
	focusService focus.Service
}

// newApplication opens the database and wires the services.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required to run the server")
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	b, err := backend.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app := &application{
		config:       cfg,
		logger:       logger,
		backend:      b,
		jwtService:   jwtService,
		focusService: b.FocusService(cfg.Focus, logger),
	}

	logger.Info("application initialized",
		"consistent_snapshot", cfg.Focus.ConsistentSnapshot,
		"default_mode", cfg.Focus.DefaultMode)
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.backend != nil {
		if err := app.backend.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
