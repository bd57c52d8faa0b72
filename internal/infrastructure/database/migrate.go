package database

import (
	"context"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/janhq/companion-api/internal/infrastructure/database/entities"
)

// Snapshots of the schema as it stood when each migration was written.
type companionV1 struct {
	ID         string `gorm:"primaryKey;size:36"`
	Name       string `gorm:"size:255;not null"`
	Subject    string `gorm:"size:64;not null;index"`
	Topic      string `gorm:"type:text;not null"`
	Duration   int    `gorm:"not null;default:0"`
	Bookmarked bool   `gorm:"not null;default:false"`
	Author     string `gorm:"size:128;not null;index"`
	CreatedAt  time.Time
}

func (companionV1) TableName() string { return "companions" }

type companionV2 struct {
	Voice string `gorm:"size:32;not null;default:male"`
	Style string `gorm:"size:32;not null;default:casual"`
}

func (companionV2) TableName() string { return "companions" }

// GetMigrator returns the schema migrator for the companion store.
func GetMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	migrator := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202510010001_initial",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&companionV1{}, &entities.SessionHistory{}, &entities.Bookmark{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("bookmarks", "session_history", "companions")
			},
		},
		{
			ID: "202510150001_companion_voice_style",
			Migrate: func(tx *gorm.DB) error {
				for _, column := range []string{"Voice", "Style"} {
					if tx.Migrator().HasColumn(&companionV2{}, column) {
						continue
					}
					if err := tx.Migrator().AddColumn(&companionV2{}, column); err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				for _, column := range []string{"Voice", "Style"} {
					if err := tx.Migrator().DropColumn(&companionV2{}, column); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			ID: "202510150002_companion_author_created_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&entities.Companion{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropIndex(&entities.Companion{}, "idx_companions_author_created")
			},
		},
	})

	migrator.InitSchema(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "sqlite" {
			if err := tx.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
				return err
			}
		}
		return tx.AutoMigrate(&entities.Companion{}, &entities.SessionHistory{}, &entities.Bookmark{})
	})

	return migrator
}

// Migrate brings the schema up to date.
func Migrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := GetMigrator(db.WithContext(ctx)).Migrate(); err != nil {
		return err
	}
	log.Info().Msg("database schema up to date")
	return nil
}

// RollbackLast undoes the most recent migration.
func RollbackLast(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := GetMigrator(db.WithContext(ctx)).RollbackLast(); err != nil {
		return err
	}
	log.Info().Msg("rolled back last migration")
	return nil
}
