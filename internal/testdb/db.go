package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/focus-api/internal/platform/migrate"
	"github.com/phrazzld/focus-api/internal/platform/postgres"
	"github.com/phrazzld/focus-api/internal/platform/sqlite"
)

// DatabaseURLEnv names the variable holding the Postgres test database URL.
const DatabaseURLEnv = "FOCUS_TEST_DATABASE_URL"

// GetTestDatabaseURL returns the Postgres test database URL, or "" when unset.
func GetTestDatabaseURL() string {
	return os.Getenv(DatabaseURLEnv)
}

// ShouldSkipDatabaseTest reports whether Postgres tests should be skipped.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// OpenPostgres connects to the Postgres test database and applies all
// migrations. The test is skipped when DatabaseURLEnv is not set.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	dsn := GetTestDatabaseURL()
	if dsn == "" {
		t.Skipf("%s not set - skipping integration test", DatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, dsn, 4)
	if err != nil {
		t.Fatalf("failed to connect to %s: %v", migrate.MaskDatabaseURL(dsn), err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := postgres.Migrate(ctx, db, nil); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// OpenSQLite returns a migrated in-memory SQLite database closed at the end
// of the test.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqlite.Migrate(ctx, db, nil); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return db
}
