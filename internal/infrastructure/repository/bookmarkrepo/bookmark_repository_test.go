package bookmarkrepo

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/companion-api/internal/domain/bookmark"
	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/infrastructure/database"
	"github.com/janhq/companion-api/internal/infrastructure/database/dbtest"
	"github.com/janhq/companion-api/internal/infrastructure/database/entities"
	"github.com/janhq/companion-api/internal/infrastructure/repository/companionrepo"
)

func setup(t *testing.T) (*database.Database, bookmark.Repository) {
	t.Helper()
	db := dbtest.New(t)
	companions := companionrepo.NewCompanionGormRepository(db)
	require.NoError(t, companions.Create(context.Background(), &companion.Companion{
		ID: "c1", Name: "Neura", Subject: "science", Topic: "t", Author: "owner", CreatedAt: time.Now().UTC(),
	}))
	return db, NewBookmarkGormRepository(db)
}

func state(t *testing.T, db *database.Database) (rows int64, flag bool) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, db.GetTx(ctx).Model(&entities.Bookmark{}).Where("companion_id = ?", "c1").Count(&rows).Error)
	var c entities.Companion
	require.NoError(t, db.GetTx(ctx).Where("id = ?", "c1").First(&c).Error)
	return rows, c.Bookmarked
}

func TestInsertDeleteSetFlag(t *testing.T) {
	db, repo := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, "c1", "user_1"))
	require.NoError(t, repo.SetFlag(ctx, "c1", true))
	rows, flag := state(t, db)
	assert.EqualValues(t, 1, rows)
	assert.True(t, flag)

	assert.Error(t, repo.Insert(ctx, "c1", "user_1"), "unique (companion_id, user_id)")

	require.NoError(t, repo.Delete(ctx, "c1", "user_1"))
	require.NoError(t, repo.SetFlag(ctx, "c1", false))
	rows, flag = state(t, db)
	assert.Zero(t, rows)
	assert.False(t, flag)
}

func TestService_SecondAddLeavesStateUnchanged(t *testing.T) {
	db, repo := setup(t)
	svc := bookmark.NewService(repo, nil, zerolog.Nop())
	caller := &identity.Identity{UserID: "user_1"}

	require.NoError(t, svc.Add(context.Background(), caller, "c1", ""))
	err := svc.Add(context.Background(), caller, "c1", "")
	require.Error(t, err)

	rows, flag := state(t, db)
	assert.EqualValues(t, 1, rows)
	assert.True(t, flag)
}

func TestService_AtomicWritesUseTransaction(t *testing.T) {
	db, repo := setup(t)
	svc := bookmark.NewService(repo, nil, zerolog.Nop(), bookmark.WithTransactor(db))
	caller := &identity.Identity{UserID: "user_1"}

	require.NoError(t, svc.Add(context.Background(), caller, "c1", ""))
	rows, flag := state(t, db)
	assert.EqualValues(t, 1, rows)
	assert.True(t, flag)

	require.NoError(t, svc.Remove(context.Background(), caller, "c1", ""))
	rows, flag = state(t, db)
	assert.Zero(t, rows)
	assert.False(t, flag)
}
