package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/janhq/companion-api/internal/infrastructure/database/entities"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	db, err := Connect(Config{
		DSN:      "sqlite://" + filepath.Join(t.TempDir(), "schema.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(context.Background(), db, zerolog.Nop()))
	// Running twice is a no-op.
	require.NoError(t, Migrate(context.Background(), db, zerolog.Nop()))

	m := db.Migrator()
	assert.True(t, m.HasTable("companions"))
	assert.True(t, m.HasTable("session_history"))
	assert.True(t, m.HasTable("bookmarks"))
	assert.True(t, m.HasColumn(&entities.Companion{}, "Voice"))
	assert.True(t, m.HasIndex(&entities.Bookmark{}, "idx_bookmarks_companion_user"))
	assert.Equal(t, "sqlite", NewDatabase(db).Dialect())
	assert.False(t, IsPostgres(db))
}

func TestConnect_RequiresDSN(t *testing.T) {
	_, err := Connect(Config{})
	assert.Error(t, err)
}

func TestInTx_RollsBack(t *testing.T) {
	db, err := Connect(Config{
		DSN:      "sqlite://" + filepath.Join(t.TempDir(), "tx.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db, zerolog.Nop()))
	store := NewDatabase(db)

	err = store.InTx(context.Background(), func(ctx context.Context) error {
		if err := store.GetTx(ctx).Create(&entities.Companion{ID: "c1", Name: "n", Subject: "s", Topic: "t", Author: "a"}).Error; err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	var count int64
	require.NoError(t, db.Model(&entities.Companion{}).Count(&count).Error)
	assert.Zero(t, count)
}
