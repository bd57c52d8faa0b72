package handlers

import (
	"context"

	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/dashboard"
	"github.com/janhq/companion-api/internal/domain/identity"
)

type DashboardHandler struct {
	service *dashboard.Service
	views   viewRenderer
}

func NewDashboardHandler(service *dashboard.Service, views viewRenderer) *DashboardHandler {
	return &DashboardHandler{service: service, views: views}
}

// Get renders the caller's dashboard through the view cache.
func (h *DashboardHandler) Get(ctx context.Context, caller *identity.Identity) ([]byte, error) {
	if !caller.Authenticated() {
		return nil, identity.ErrAuthRequired
	}
	return h.views.render(ctx, companion.ViewDashboard, ViewVariant(caller.UserID, nil), func() (any, error) {
		return h.service.Build(ctx, caller)
	})
}
