package companionrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/infrastructure/database"
	"github.com/janhq/companion-api/internal/infrastructure/database/entities"
)

// CompanionGormRepository persists companions using GORM.
type CompanionGormRepository struct {
	db *database.Database
}

var _ companion.Repository = (*CompanionGormRepository)(nil)

func NewCompanionGormRepository(db *database.Database) companion.Repository {
	return &CompanionGormRepository{db: db}
}

// contains returns a case-insensitive substring predicate for column. PostgreSQL uses
// ILIKE; other dialects lower both sides.
func (r *CompanionGormRepository) contains(column string) string {
	if r.db.Dialect() == "postgres" {
		return column + " ILIKE ?"
	}
	return "LOWER(" + column + ") LIKE LOWER(?)"
}

func pattern(value string) string {
	return "%" + value + "%"
}

func (r *CompanionGormRepository) Find(ctx context.Context, q companion.Query) ([]*companion.Companion, error) {
	db := r.db.GetTx(ctx)
	sql := db.Model(&entities.Companion{}).Where("author = ?", q.Author)

	matchTopic := func() *gorm.DB {
		return db.Where(r.contains("topic"), pattern(q.Topic)).Or(r.contains("name"), pattern(q.Topic))
	}

	switch q.Mode {
	case companion.MatchSubjectAndTopic:
		sql = sql.Where(r.contains("subject"), pattern(q.Subject)).Where(matchTopic())
	case companion.MatchSubject:
		sql = sql.Where(r.contains("subject"), pattern(q.Subject))
	case companion.MatchTopic:
		sql = sql.Where(matchTopic())
	}

	var rows []entities.Companion
	err := sql.
		Order("created_at DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return entities.CompanionsToDomain(rows), nil
}

func (r *CompanionGormRepository) FindByID(ctx context.Context, id string) (*companion.Companion, error) {
	var row entities.Companion
	err := r.db.GetTx(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.EtoD(), nil
}

func (r *CompanionGormRepository) FindByAuthor(ctx context.Context, author string) ([]*companion.Companion, error) {
	var rows []entities.Companion
	err := r.db.GetTx(ctx).
		Where("author = ?", author).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return entities.CompanionsToDomain(rows), nil
}

// FindBookmarked reads through the bookmarks table; the companions.bookmarked flag is not
// consulted.
func (r *CompanionGormRepository) FindBookmarked(ctx context.Context, userID string) ([]*companion.Companion, error) {
	var rows []entities.Companion
	err := r.db.GetTx(ctx).
		Model(&entities.Companion{}).
		Select("companions.*").
		Joins("JOIN bookmarks ON bookmarks.companion_id = companions.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return entities.CompanionsToDomain(rows), nil
}

func (r *CompanionGormRepository) CountByAuthor(ctx context.Context, author string) (int64, error) {
	var count int64
	err := r.db.GetTx(ctx).
		Model(&entities.Companion{}).
		Where("author = ?", author).
		Count(&count).Error
	return count, err
}

func (r *CompanionGormRepository) Create(ctx context.Context, c *companion.Companion) error {
	return r.db.GetTx(ctx).Omit(clause.Associations).Create(entities.NewCompanion(c)).Error
}
