package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"infinite-experiment/shiplog/internal/config"
	"infinite-experiment/shiplog/internal/db"
)

// NewStore opens a migrated sqlite store in a temp dir, closed on cleanup.
func NewStore(tb testing.TB) *db.Store {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "shipments.db")
	store, err := db.Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, Path: path})
	if err != nil {
		tb.Fatalf("open store: %v", err)
	}
	tb.Cleanup(func() { _ = store.Close() })

	if err := db.Migrate(store.ORM); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return store
}
