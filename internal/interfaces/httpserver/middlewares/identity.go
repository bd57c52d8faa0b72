package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/infrastructure/auth"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/responses"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

// IdentityResolver resolves the caller from request headers.
type IdentityResolver interface {
	Resolve(ctx context.Context, header http.Header) (*identity.Identity, error)
}

// Identity resolves the caller when credentials are present. Requests without
// credentials pass through anonymous; routes decide what anonymous means.
func Identity(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, err := resolver.Resolve(ctx, c.Request.Header)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "invalid token", "")
				return
			}
			responses.HandleError(c, err, "failed to resolve identity")
			return
		}
		if id != nil {
			c.Request = c.Request.WithContext(identity.WithIdentity(ctx, id))
			c.Set("user_id", id.UserID)
		}
		c.Next()
	}
}
