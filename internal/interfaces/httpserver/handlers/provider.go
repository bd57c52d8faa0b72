package handlers

import (
	"github.com/janhq/companion-api/internal/config"
	"github.com/janhq/companion-api/internal/domain/bookmark"
	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/dashboard"
	"github.com/janhq/companion-api/internal/domain/sessionhistory"
	"github.com/janhq/companion-api/internal/domain/view"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Companion *CompanionHandler
	Bookmark  *BookmarkHandler
	Session   *SessionHandler
	Dashboard *DashboardHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	cfg *config.Config,
	companions companion.Service,
	bookmarks *bookmark.Service,
	sessions *sessionhistory.Service,
	dashboards *dashboard.Service,
	cache view.Cache,
) *Provider {
	views := viewRenderer{cache: cache, ttl: cfg.ViewCacheTTL}
	return &Provider{
		Companion: NewCompanionHandler(companions, views),
		Bookmark:  NewBookmarkHandler(bookmarks),
		Session:   NewSessionHandler(sessions, companions),
		Dashboard: NewDashboardHandler(dashboards, views),
	}
}
