package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/companion-api/internal/config"
	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/responses"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	guard    pageGuard
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(cfg *config.Config, handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
		guard:    pageGuard{signInPath: cfg.SignInPath},
	}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerCompanionRoutes(group, r.handlers.Companion, r.handlers.Bookmark, r.handlers.Session, r.guard)
	registerUserRoutes(group, r.handlers.Companion, r.handlers.Session, r.guard)
	registerSessionRoutes(group, r.handlers.Session, r.guard)
	registerDashboardRoutes(group, r.handlers.Dashboard, r.guard)
}

// pageGuard sends anonymous callers of page routes to the sign-in page.
type pageGuard struct {
	signInPath string
}

// caller returns the authenticated identity or redirects and aborts.
func (g pageGuard) caller(c *gin.Context) (*identity.Identity, bool) {
	id := identity.FromContext(c.Request.Context())
	if !id.Authenticated() {
		g.redirect(c)
		return nil, false
	}
	return id, true
}

func (g pageGuard) redirect(c *gin.Context) {
	c.Redirect(http.StatusFound, g.signInPath)
	c.Abort()
}

// fail renders err, turning a missing identity into the sign-in redirect.
func (g pageGuard) fail(c *gin.Context, err error, message string) {
	if errors.Is(err, identity.ErrAuthRequired) {
		g.redirect(c)
		return
	}
	responses.HandleError(c, err, message)
}

type errorResponse = responses.ErrorResponse
