package entitlement

import "github.com/janhq/companion-api/internal/domain/identity"

const (
	PlanUnlimited = "pro_companion"

	FeatureThreeActive = "3_active_companions"
	FeatureTenActive   = "10_active_companions"
)

// Decision is the outcome of evaluating the creation policy for one caller.
type Decision struct {
	Allowed   bool `json:"allowed"`
	Unlimited bool `json:"unlimited"`
	Limit     int  `json:"limit"`
	Owned     int  `json:"owned"`
}

// tiers are evaluated in order; the first feature the caller carries wins.
var tiers = []struct {
	feature string
	limit   int
}{
	{FeatureThreeActive, 3},
	{FeatureTenActive, 10},
}

// Limit returns the maximum number of companions the caller may own and whether the caller
// is unlimited. A caller with no recognised plan or feature gets a limit of zero.
func Limit(id *identity.Identity) (limit int, unlimited bool) {
	if id.Has(identity.Selector{Plan: PlanUnlimited}) {
		return 0, true
	}
	for _, tier := range tiers {
		if id.Has(identity.Selector{Feature: tier.feature}) {
			return tier.limit, false
		}
	}
	return 0, false
}

// Decide evaluates whether a caller owning `owned` companions may create another one.
func Decide(id *identity.Identity, owned int) Decision {
	limit, unlimited := Limit(id)
	if unlimited {
		return Decision{Allowed: true, Unlimited: true, Owned: owned}
	}
	return Decision{
		Allowed: owned < limit,
		Limit:   limit,
		Owned:   owned,
	}
}
