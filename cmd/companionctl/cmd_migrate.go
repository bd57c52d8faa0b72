package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/janhq/companion-api/internal/config"
	"github.com/janhq/companion-api/internal/infrastructure/database"
	"github.com/janhq/companion-api/internal/infrastructure/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrateUp,
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the most recent migration",
	RunE:  runMigrateRollback,
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateRollbackCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, log, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	if err := database.Migrate(cmd.Context(), db, log); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}

func runMigrateRollback(cmd *cobra.Command, args []string) error {
	db, log, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	if err := database.RollbackLast(cmd.Context(), db, log); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "last migration rolled back")
	return nil
}

// openDatabase connects using --dsn when given, otherwise the service configuration.
func openDatabase(cmd *cobra.Command) (*gorm.DB, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.New(cfg)

	dsn, _ := cmd.Flags().GetString("dsn")
	if dsn == "" {
		dsn = cfg.DatabaseURL
	}

	db, err := database.Connect(database.Config{
		DSN:          dsn,
		MaxOpenConns: 2,
		LogLevel:     gormlogger.Warn,
	})
	if err != nil {
		return nil, log, err
	}
	return db, log, nil
}
