package db

import (
	"context"
	"path/filepath"
	"testing"

	"infinite-experiment/shiplog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipments.db")
	store, err := Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, Path: path})
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, config.DriverSQLite, store.Driver())
	require.NoError(t, Migrate(store.ORM))

	for _, table := range []string{"ports", "vessels", "shipments"} {
		assert.True(t, store.ORM.Migrator().HasTable(table), table)
	}

	// Tables created through GORM are visible through sqlx.
	var count int
	require.NoError(t, store.SQL.Get(&count, "SELECT COUNT(*) FROM vessels"))
	assert.Equal(t, 0, count)

	// Migrating twice is a no-op.
	require.NoError(t, Migrate(store.ORM))
}

func TestStore_CloseIsIdempotent(t *testing.T) {
	store, err := Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
	assert.Nil(t, store.SQL)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "mongo"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
