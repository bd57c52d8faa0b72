package sessionhistory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/domain/view"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

const DefaultLimit = 10

// Entry is one recorded engagement with a companion.
type Entry struct {
	ID          string    `json:"id"`
	CompanionID string    `json:"companion_id"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository persists session history. Rows are append only.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	// RecentCompanions returns the companions of the newest sessions, newest first. An empty
	// userID spans all users.
	RecentCompanions(ctx context.Context, userID string, limit int) ([]*companion.Companion, error)
}

// Service records and lists session history.
type Service struct {
	repo  Repository
	views view.Invalidator
	log   zerolog.Logger
}

// NewService wires the session history service.
func NewService(repo Repository, views view.Invalidator, log zerolog.Logger) *Service {
	if views == nil {
		views = view.NoopInvalidator{}
	}
	return &Service{
		repo:  repo,
		views: views,
		log:   log.With().Str("component", "session-history-service").Logger(),
	}
}

// Record appends a session row for the caller.
func (s *Service) Record(ctx context.Context, caller *identity.Identity, companionID string) (*Entry, error) {
	if !caller.Authenticated() {
		return nil, identity.ErrAuthRequired
	}
	entry := &Entry{
		ID:          uuid.NewString(),
		CompanionID: companionID,
		UserID:      caller.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, platformerrors.NewStoreError(ctx, err, "failed to add to session history")
	}
	if err := s.views.Invalidate(ctx, companion.ViewDashboard); err != nil {
		s.log.Warn().Err(err).Msg("invalidate dashboard after session")
	}
	return entry, nil
}

// Recent lists companions from the most recent sessions of any user.
func (s *Service) Recent(ctx context.Context, limit int) ([]*companion.Companion, error) {
	return s.list(ctx, "", limit, "failed to fetch recent sessions")
}

// ForUser lists companions from the most recent sessions of userID.
func (s *Service) ForUser(ctx context.Context, userID string, limit int) ([]*companion.Companion, error) {
	return s.list(ctx, userID, limit, "failed to fetch user sessions")
}

func (s *Service) list(ctx context.Context, userID string, limit int, fallback string) ([]*companion.Companion, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	result, err := s.repo.RecentCompanions(ctx, userID, limit)
	if err != nil {
		return nil, platformerrors.NewStoreError(ctx, err, fallback)
	}
	if result == nil {
		result = []*companion.Companion{}
	}
	return result, nil
}
