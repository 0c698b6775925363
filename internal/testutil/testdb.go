package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/trestle/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory database that is closed at test end.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// NewTestUoW wraps conn in the production unit of work.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
