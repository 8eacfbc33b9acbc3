// Package backend opens the configured task database and assembles the focus
// service on top of it. The server, the CLI and the MCP server share it.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/focus-api/internal/config"
	"github.com/phrazzld/focus-api/internal/domain/scoring"
	"github.com/phrazzld/focus-api/internal/platform/migrate"
	"github.com/phrazzld/focus-api/internal/platform/postgres"
	"github.com/phrazzld/focus-api/internal/platform/sqlite"
	"github.com/phrazzld/focus-api/internal/service/focus"
	"github.com/phrazzld/focus-api/internal/store"
)

// Supported values of database.driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// TaskStore is implemented by both the postgres and sqlite task stores.
type TaskStore interface {
	store.TaskStore
	store.TaskWriter
}

// Backend is an open task database with its dialect-specific pieces.
type Backend struct {
	Driver string
	DB     *sql.DB
	Tasks  TaskStore

	snapshotOpts *sql.TxOptions
	migrate      func(ctx context.Context, db *sql.DB, logger *slog.Logger) error
	logger       *slog.Logger
}

// Open connects to the database described by cfg. When cfg.AutoMigrate is
// set, pending migrations are applied before Open returns.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	b := &Backend{Driver: cfg.Driver, logger: logger}

	var err error
	switch cfg.Driver {
	case DriverPostgres:
		b.DB, err = postgres.Open(ctx, cfg.URL, cfg.MaxOpenConns)
		if err != nil {
			return nil, err
		}
		b.Tasks = postgres.NewPostgresTaskStore(b.DB, logger)
		b.snapshotOpts = postgres.SnapshotTxOptions()
		b.migrate = postgres.Migrate
	case DriverSQLite:
		b.DB, err = sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		b.Tasks = sqlite.NewSQLiteTaskStore(b.DB, logger)
		b.snapshotOpts = sqlite.SnapshotTxOptions()
		b.migrate = sqlite.Migrate
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	location := cfg.URL
	if cfg.Driver == DriverPostgres {
		location = migrate.MaskDatabaseURL(cfg.URL)
	}
	logger.Info("database connection established",
		slog.String("driver", cfg.Driver),
		slog.String("location", location))

	if cfg.AutoMigrate {
		if err := b.Migrate(ctx); err != nil {
			_ = b.Close()
			return nil, err
		}
	}

	return b, nil
}

// Migrate applies all pending migrations for the backend's dialect.
func (b *Backend) Migrate(ctx context.Context) error {
	if err := b.migrate(ctx, b.DB, b.logger); err != nil {
		return fmt.Errorf("failed to migrate %s database: %w", b.Driver, err)
	}
	return nil
}

// FocusService builds the focus list provider over this backend.
// With cfg.ConsistentSnapshot both reads share one read-only transaction.
func (b *Backend) FocusService(cfg config.FocusConfig, logger *slog.Logger, opts ...focus.Option) focus.Service {
	if cfg.ConsistentSnapshot {
		opts = append(opts, focus.WithConsistentSnapshot(b.snapshotOpts))
	}
	return focus.NewFocusService(
		focus.NewTaskRepositoryAdapter(b.Tasks, b.DB),
		scoring.NewDefaultService(),
		logger,
		opts...,
	)
}

// Close closes the database connection.
func (b *Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}
