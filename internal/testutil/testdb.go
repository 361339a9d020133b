package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/pulse/internal/db"
)

// NewTestDB returns a migrated in-memory store closed at test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// NewTestUoW wraps conn in a UnitOfWork.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
