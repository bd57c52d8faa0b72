package sessionrepo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/sessionhistory"
	"github.com/janhq/companion-api/internal/infrastructure/database"
	"github.com/janhq/companion-api/internal/infrastructure/database/entities"
)

type SessionGormRepository struct {
	db *database.Database
}

var _ sessionhistory.Repository = (*SessionGormRepository)(nil)

func NewSessionGormRepository(db *database.Database) sessionhistory.Repository {
	return &SessionGormRepository{db: db}
}

func (r *SessionGormRepository) Append(ctx context.Context, entry *sessionhistory.Entry) error {
	return r.db.GetTx(ctx).Omit(clause.Associations).Create(entities.NewSessionHistory(entry)).Error
}

// RecentCompanions joins session rows to their companions, newest session first. A
// companion appears once per session.
func (r *SessionGormRepository) RecentCompanions(ctx context.Context, userID string, limit int) ([]*companion.Companion, error) {
	sql := r.db.GetTx(ctx).
		Model(&entities.SessionHistory{}).
		Preload("Companion").
		Order("created_at DESC").
		Limit(limit)
	if userID != "" {
		sql = sql.Where("user_id = ?", userID)
	}

	var rows []entities.SessionHistory
	if err := sql.Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]*companion.Companion, 0, len(rows))
	for i := range rows {
		if rows[i].Companion.ID == "" {
			continue
		}
		result = append(result, rows[i].Companion.EtoD())
	}
	return result, nil
}
