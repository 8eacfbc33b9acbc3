package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/phrazzld/focus-api/internal/platform/migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Dialect is the goose dialect name for PostgreSQL.
const Dialect = "postgres"

// Migrate applies the embedded PostgreSQL schema migrations.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return migrate.Up(ctx, db, Dialect, sub, logger)
}
