package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

// Development headers read when auth is disabled.
const (
	HeaderUserID       = "X-User-ID"
	HeaderUserPlans    = "X-User-Plans"
	HeaderUserFeatures = "X-User-Features"
)

// EntitlementSource looks up entitlements not carried in the token.
type EntitlementSource interface {
	Lookup(ctx context.Context, userID string) (Entitlements, error)
}

// Resolver turns request credentials into an identity.
type Resolver struct {
	validator    *Validator
	entitlements EntitlementSource
	log          zerolog.Logger
}

func NewResolver(validator *Validator, entitlements *EntitlementsClient, log zerolog.Logger) *Resolver {
	r := &Resolver{
		validator: validator,
		log:       log.With().Str("component", "identity-resolver").Logger(),
	}
	// A nil *EntitlementsClient must stay a nil interface.
	if entitlements != nil {
		r.entitlements = entitlements
	}
	return r
}

// Resolve returns (nil, nil) for requests without credentials and ErrInvalidToken for a
// bearer token that does not validate.
func (r *Resolver) Resolve(ctx context.Context, header http.Header) (*identity.Identity, error) {
	var id *identity.Identity
	if r.validator.Enabled() {
		token := bearerToken(header.Get("Authorization"))
		if token == "" {
			return nil, nil
		}
		claims, err := r.validator.Parse(token)
		if err != nil {
			return nil, err
		}
		id, err = IdentityFromClaims(claims)
		if err != nil {
			return nil, err
		}
	} else {
		userID := strings.TrimSpace(header.Get(HeaderUserID))
		if userID == "" {
			return nil, nil
		}
		id = &identity.Identity{
			UserID:   userID,
			Plans:    dedupe(splitList(header.Get(HeaderUserPlans))),
			Features: dedupe(splitList(header.Get(HeaderUserFeatures))),
		}
	}

	if r.entitlements != nil {
		granted, err := r.entitlements.Lookup(ctx, id.UserID)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
				"failed to resolve entitlements", err, "")
		}
		id.Plans = dedupe(append(id.Plans, granted.Plans...))
		id.Features = dedupe(append(id.Features, granted.Features...))
	}
	return id, nil
}
