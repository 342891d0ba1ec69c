package repository

import (
	"context"
	"testing"

	"momentzero/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupSQLiteDB returns a migrated in-memory database. The pool is pinned to one
// connection because every new :memory: connection would see an empty database.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(database.SQLiteDSN(":memory:")))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrations(context.Background(), db))
	return db
}
