package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "companionctl",
	Short: "Operator tooling for the companion API",
	Long: `companionctl runs maintenance tasks against the companion API database.

Examples:
  # Apply pending migrations
  companionctl migrate up

  # Undo the most recent migration
  companionctl migrate rollback

  # Check whether a user may create another companion
  companionctl entitlement check --user user_123 --feature 3_active_companions

  # Validate a starter catalog before deploying it
  companionctl catalog validate -f popular_companions.yaml`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadEnvFiles()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(entitlementCmd)
	rootCmd.AddCommand(catalogCmd)

	rootCmd.PersistentFlags().String("dsn", "", "Database DSN (defaults to DB_POSTGRESQL_WRITE_DSN)")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
