package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/entitlement"
	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/domain/view"
	"github.com/janhq/companion-api/internal/infrastructure/database"
	"github.com/janhq/companion-api/internal/infrastructure/repository/companionrepo"
)

var entitlementCmd = &cobra.Command{
	Use:   "entitlement",
	Short: "Inspect companion creation entitlements",
}

var entitlementCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate whether a user may create another companion",
	Long: `Counts the companions the user already authored and applies the creation
policy for the given plans and features.`,
	RunE: runEntitlementCheck,
}

func init() {
	entitlementCmd.AddCommand(entitlementCheckCmd)

	entitlementCheckCmd.Flags().String("user", "", "User ID to evaluate")
	entitlementCheckCmd.Flags().StringSlice("plan", nil, "Plans held by the user")
	entitlementCheckCmd.Flags().StringSlice("feature", nil, "Features held by the user")
	_ = entitlementCheckCmd.MarkFlagRequired("user")
}

func runEntitlementCheck(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	plans, _ := cmd.Flags().GetStringSlice("plan")
	features, _ := cmd.Flags().GetStringSlice("feature")

	db, log, err := openDatabase(cmd)
	if err != nil {
		return err
	}

	caller := &identity.Identity{UserID: strings.TrimSpace(userID), Plans: plans, Features: features}
	service := companion.NewService(companionrepo.NewCompanionGormRepository(database.NewDatabase(db)), view.NoopInvalidator{}, log)

	decision, err := checkEntitlement(cmd.Context(), service, caller)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(decision)
}

func checkEntitlement(ctx context.Context, service companion.Service, caller *identity.Identity) (entitlement.Decision, error) {
	if !caller.Authenticated() {
		return entitlement.Decision{}, fmt.Errorf("--user is required")
	}
	decision, err := service.Permissions(ctx, caller)
	if err != nil {
		return entitlement.Decision{}, err
	}
	zerolog.Ctx(ctx).Debug().Str("user_id", caller.UserID).Bool("allowed", decision.Allowed).Msg("entitlement evaluated")
	return decision, nil
}
