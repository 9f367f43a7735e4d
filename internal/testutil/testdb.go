package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rota/internal/db"
)

// NewTestDB opens a migrated in-memory roster database that lives for the
// duration of the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openForTest(t, ":memory:")
}

// NewFileTestDB opens a migrated roster database in a temp directory. Every
// pooled connection sees the same file, so concurrent readers and writers
// hit real WAL behavior instead of a single shared in-memory connection.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openForTest(t, filepath.Join(t.TempDir(), "rota_test.db"))
}

func openForTest(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening roster test database %q: %v", path, err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps a test database in the production unit of work.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
