package db

import (
	"database/sql"
	"testing"
)

// NewTestDB returns a fresh in-memory database with the full schema applied,
// closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	// Every pool connection to :memory: is a separate empty database, so
	// the pool must stay at a single connection or concurrent test requests
	// would see no schema.
	database.SetMaxOpenConns(1)

	if err := EnsureSchema(database); err != nil {
		database.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { database.Close() })

	return database
}
