package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/janhq/companion-api/internal/domain/identity"
)

// IdentityFromClaims reads the user id, plans and features from verified claims.
//
// Plans come from "pla" (comma separated, entries may carry a "u:" or "o:" scope prefix)
// or a "plans" array. Features come from "fea" or "features" in the same shapes.
func IdentityFromClaims(claims jwt.MapClaims) (*identity.Identity, error) {
	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return nil, ErrInvalidToken
	}
	return &identity.Identity{
		UserID:   sub,
		Plans:    claimList(claims, "pla", "plans"),
		Features: claimList(claims, "fea", "features"),
	}, nil
}

func claimList(claims jwt.MapClaims, keys ...string) []string {
	var result []string
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			result = append(result, splitList(v)...)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					result = append(result, splitList(s)...)
				}
			}
		}
	}
	return dedupe(result)
}

// splitList splits a comma separated claim and strips scope prefixes.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if idx := strings.Index(part, ":"); idx == 1 {
			part = part[2:]
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
