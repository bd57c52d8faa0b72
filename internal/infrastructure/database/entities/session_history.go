package entities

import (
	"time"

	"github.com/janhq/companion-api/internal/domain/sessionhistory"
)

type SessionHistory struct {
	ID          string    `gorm:"primaryKey;size:36"`
	CompanionID string    `gorm:"size:36;not null;index"`
	UserID      string    `gorm:"size:128;not null;index:idx_session_history_user_created,priority:1"`
	CreatedAt   time.Time `gorm:"not null;index;index:idx_session_history_user_created,priority:2"`

	Companion Companion `gorm:"foreignKey:CompanionID;references:ID;constraint:OnDelete:CASCADE"`
}

func (SessionHistory) TableName() string { return "session_history" }

func NewSessionHistory(e *sessionhistory.Entry) *SessionHistory {
	return &SessionHistory{
		ID:          e.ID,
		CompanionID: e.CompanionID,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
	}
}
