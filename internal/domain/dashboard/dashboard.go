package dashboard

import (
	"context"

	"github.com/janhq/companion-api/internal/domain/catalog"
	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/identity"
)

const (
	FeaturedCount      = 3
	RecentSessionCount = 10
)

// Card is one featured tile on the dashboard.
type Card struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Duration   int    `json:"duration"`
	Bookmarked bool   `json:"bookmarked"`
	Starter    bool   `json:"starter"`
	Color      string `json:"color"`
}

// Dashboard is the home view of a signed-in user.
type Dashboard struct {
	Companions     []Card                 `json:"companions"`
	RecentSessions []*companion.Companion `json:"recent_sessions"`
}

// CompanionLister lists the caller's own companions.
type CompanionLister interface {
	List(ctx context.Context, caller *identity.Identity, params companion.ListParams) ([]*companion.Companion, error)
}

// SessionLister lists companions of recent sessions.
type SessionLister interface {
	Recent(ctx context.Context, limit int) ([]*companion.Companion, error)
}

// Service assembles dashboards.
type Service struct {
	companions CompanionLister
	sessions   SessionLister
	catalog    *catalog.Catalog
}

// NewService wires the dashboard service.
func NewService(companions CompanionLister, sessions SessionLister, cat *catalog.Catalog) *Service {
	return &Service{
		companions: companions,
		sessions:   sessions,
		catalog:    cat,
	}
}

// Build returns the caller's newest companions, topped up with starters, and the most
// recent sessions.
func (s *Service) Build(ctx context.Context, caller *identity.Identity) (*Dashboard, error) {
	owned, err := s.companions.List(ctx, caller, companion.ListParams{Limit: FeaturedCount})
	if err != nil {
		return nil, err
	}
	recent, err := s.sessions.Recent(ctx, RecentSessionCount)
	if err != nil {
		return nil, err
	}

	cards := make([]Card, 0, FeaturedCount)
	for _, c := range owned {
		cards = append(cards, Card{
			ID:         c.ID,
			Name:       c.Name,
			Subject:    c.Subject,
			Topic:      c.Topic,
			Duration:   c.Duration,
			Bookmarked: c.Bookmarked,
			Color:      s.catalog.Color(c.Subject),
		})
	}
	cards = append(cards, Fillers(owned, s.catalog)...)

	return &Dashboard{
		Companions:     cards,
		RecentSessions: recent,
	}, nil
}

// Fillers returns starter cards that top owned up to FeaturedCount, skipping starters whose
// name is already present, in catalog order.
func Fillers(owned []*companion.Companion, cat *catalog.Catalog) []Card {
	needed := FeaturedCount - len(owned)
	if needed <= 0 || cat == nil {
		return nil
	}

	existing := make(map[string]struct{}, len(owned))
	for _, c := range owned {
		existing[c.Name] = struct{}{}
	}

	fillers := make([]Card, 0, needed)
	for _, starter := range cat.Popular {
		if len(fillers) == needed {
			break
		}
		if _, ok := existing[starter.Name]; ok {
			continue
		}
		fillers = append(fillers, Card{
			ID:       starter.ID,
			Name:     starter.Name,
			Subject:  starter.Subject,
			Topic:    starter.Topic,
			Duration: starter.Duration,
			Starter:  true,
			Color:    cat.Color(starter.Subject),
		})
	}
	return fillers
}
