package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janhq/companion-api/internal/domain/identity"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		id        *identity.Identity
		owned     int
		allowed   bool
		limit     int
		unlimited bool
	}{
		{
			name:      "unlimited plan ignores count",
			id:        &identity.Identity{UserID: "u", Plans: []string{PlanUnlimited}},
			owned:     500,
			allowed:   true,
			unlimited: true,
		},
		{
			name:    "three feature at limit",
			id:      &identity.Identity{UserID: "u", Features: []string{FeatureThreeActive}},
			owned:   3,
			allowed: false,
			limit:   3,
		},
		{
			name:    "three feature below limit",
			id:      &identity.Identity{UserID: "u", Features: []string{FeatureThreeActive}},
			owned:   2,
			allowed: true,
			limit:   3,
		},
		{
			name:    "ten feature",
			id:      &identity.Identity{UserID: "u", Features: []string{FeatureTenActive}},
			owned:   9,
			allowed: true,
			limit:   10,
		},
		{
			name:    "three feature wins over ten",
			id:      &identity.Identity{UserID: "u", Features: []string{FeatureTenActive, FeatureThreeActive}},
			owned:   5,
			allowed: false,
			limit:   3,
		},
		{
			name:    "no flags denied at zero",
			id:      &identity.Identity{UserID: "u"},
			owned:   0,
			allowed: false,
		},
		{
			name:    "nil identity denied",
			owned:   0,
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.id, tt.owned)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.limit, decision.Limit)
			assert.Equal(t, tt.unlimited, decision.Unlimited)
			assert.Equal(t, tt.owned, decision.Owned)
		})
	}
}
