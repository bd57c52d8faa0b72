package entities

import (
	"time"

	"github.com/janhq/companion-api/internal/domain/companion"
)

// Companion is the persisted form of companion.Companion.
type Companion struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Name       string    `gorm:"size:255;not null"`
	Subject    string    `gorm:"size:64;not null;index"`
	Topic      string    `gorm:"type:text;not null"`
	Voice      string    `gorm:"size:32;not null;default:male"`
	Style      string    `gorm:"size:32;not null;default:casual"`
	Duration   int       `gorm:"not null;default:0"`
	Bookmarked bool      `gorm:"not null;default:false"`
	Author     string    `gorm:"size:128;not null;index:idx_companions_author_created,priority:1"`
	CreatedAt  time.Time `gorm:"not null;index:idx_companions_author_created,priority:2"`
}

func (Companion) TableName() string { return "companions" }

// EtoD converts the entity to its domain form.
func (e *Companion) EtoD() *companion.Companion {
	return &companion.Companion{
		ID:         e.ID,
		Name:       e.Name,
		Subject:    e.Subject,
		Topic:      e.Topic,
		Voice:      e.Voice,
		Style:      e.Style,
		Duration:   e.Duration,
		Bookmarked: e.Bookmarked,
		Author:     e.Author,
		CreatedAt:  e.CreatedAt,
	}
}

// NewCompanion converts a domain companion to its entity.
func NewCompanion(c *companion.Companion) *Companion {
	return &Companion{
		ID:         c.ID,
		Name:       c.Name,
		Subject:    c.Subject,
		Topic:      c.Topic,
		Voice:      c.Voice,
		Style:      c.Style,
		Duration:   c.Duration,
		Bookmarked: c.Bookmarked,
		Author:     c.Author,
		CreatedAt:  c.CreatedAt,
	}
}

// CompanionsToDomain converts a slice of entities.
func CompanionsToDomain(rows []Companion) []*companion.Companion {
	result := make([]*companion.Companion, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].EtoD())
	}
	return result
}
