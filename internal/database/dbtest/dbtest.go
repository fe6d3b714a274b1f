// Package dbtest opens throwaway SQLite databases with the application
// schema applied.  It is only imported from tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/iliyamo/fyyur-booking/internal/database"
)

// New returns an in-memory database migrated to the current schema.  The
// handle is closed when the test finishes.
func New(t testing.TB) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(context.Background(), db, database.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
