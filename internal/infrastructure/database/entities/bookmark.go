package entities

import "time"

type Bookmark struct {
	ID          string    `gorm:"primaryKey;size:36"`
	CompanionID string    `gorm:"size:36;not null;uniqueIndex:idx_bookmarks_companion_user,priority:1"`
	UserID      string    `gorm:"size:128;not null;uniqueIndex:idx_bookmarks_companion_user,priority:2;index"`
	CreatedAt   time.Time `gorm:"not null"`

	Companion Companion `gorm:"foreignKey:CompanionID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Bookmark) TableName() string { return "bookmarks" }
