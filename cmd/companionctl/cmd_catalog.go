package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janhq/companion-api/internal/domain/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Starter catalog tooling",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse a starter catalog and report its contents",
	Long:  `Validates a catalog YAML file. Without --file the embedded default catalog is checked.`,
	RunE:  runCatalogValidate,
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogValidateCmd.Flags().StringP("file", "f", "", "Catalog file to validate")
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d starters, %d subject colors\n", len(cat.Popular), len(cat.SubjectColors))
	for _, s := range cat.Popular {
		fmt.Fprintf(out, "  %-20s %-12s %s\n", s.ID, s.Subject, cat.Color(s.Subject))
	}
	return nil
}
