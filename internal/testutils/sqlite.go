package testutils

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/citl/internal/database"
)

// NewSQLiteDB returns a migrated in-memory database closed when t ends.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, "file::memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return db
}
