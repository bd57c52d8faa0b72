package bookmarkrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/janhq/companion-api/internal/domain/bookmark"
	"github.com/janhq/companion-api/internal/infrastructure/database"
	"github.com/janhq/companion-api/internal/infrastructure/database/entities"
)

// BookmarkGormRepository writes bookmark rows and the companion flag. Each call is its own
// statement unless the context carries a transaction.
type BookmarkGormRepository struct {
	db *database.Database
}

var _ bookmark.Repository = (*BookmarkGormRepository)(nil)

func NewBookmarkGormRepository(db *database.Database) bookmark.Repository {
	return &BookmarkGormRepository{db: db}
}

func (r *BookmarkGormRepository) Insert(ctx context.Context, companionID, userID string) error {
	row := &entities.Bookmark{
		ID:          uuid.NewString(),
		CompanionID: companionID,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	return r.db.GetTx(ctx).Omit(clause.Associations).Create(row).Error
}

func (r *BookmarkGormRepository) Delete(ctx context.Context, companionID, userID string) error {
	return r.db.GetTx(ctx).
		Where("companion_id = ? AND user_id = ?", companionID, userID).
		Delete(&entities.Bookmark{}).Error
}

func (r *BookmarkGormRepository) SetFlag(ctx context.Context, companionID string, bookmarked bool) error {
	return r.db.GetTx(ctx).
		Model(&entities.Companion{}).
		Where("id = ?", companionID).
		Update("bookmarked", bookmarked).Error
}
