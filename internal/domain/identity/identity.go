package identity

import (
	"context"
	"errors"
	"strings"
)

// ErrAuthRequired is returned when an operation needs a signed-in caller and none is present.
var ErrAuthRequired = errors.New("authentication required")

// Identity is the resolved caller of a request.
type Identity struct {
	UserID   string   `json:"user_id"`
	Plans    []string `json:"plans"`
	Features []string `json:"features"`
}

// Authenticated reports whether the identity names a user.
func (i *Identity) Authenticated() bool {
	return i != nil && strings.TrimSpace(i.UserID) != ""
}

// Selector asks about a single plan or feature. Exactly one field is expected to be set.
type Selector struct {
	Plan    string
	Feature string
}

// Has reports whether the identity carries the plan or feature named by the selector.
func (i *Identity) Has(selector Selector) bool {
	if i == nil {
		return false
	}
	switch {
	case selector.Plan != "":
		return contains(i.Plans, selector.Plan)
	case selector.Feature != "":
		return contains(i.Features, selector.Feature)
	default:
		return false
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// Provider resolves the caller identity of a request context.
type Provider interface {
	Resolve(ctx context.Context) (*Identity, error)
}

type contextKey struct{}

// WithIdentity stores the resolved identity on the context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored on the context, or nil.
func FromContext(ctx context.Context) *Identity {
	if ctx == nil {
		return nil
	}
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}

// Require returns the authenticated identity from the context or ErrAuthRequired.
func Require(ctx context.Context) (*Identity, error) {
	id := FromContext(ctx)
	if !id.Authenticated() {
		return nil, ErrAuthRequired
	}
	return id, nil
}

// ContextProvider resolves identities previously attached with WithIdentity.
type ContextProvider struct{}

// Resolve implements Provider. A missing identity yields (nil, nil).
func (ContextProvider) Resolve(ctx context.Context) (*Identity, error) {
	id := FromContext(ctx)
	if !id.Authenticated() {
		return nil, nil
	}
	return id, nil
}
