// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/janhq/companion-api/internal/infrastructure/database"
)

// New returns a migrated database backed by a file in the test's temp dir.
func New(t testing.TB) *database.Database {
	t.Helper()

	db, err := database.Connect(database.Config{
		DSN:          "sqlite://" + filepath.Join(t.TempDir(), "companions.db") + "?_foreign_keys=on",
		MaxOpenConns: 1,
		LogLevel:     gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, zerolog.Nop()))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return database.NewDatabase(db)
}
