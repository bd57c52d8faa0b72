package companion

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/janhq/companion-api/internal/domain/entitlement"
	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/domain/view"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

// ErrCreationNotAllowed is returned when the caller has reached their companion limit.
var ErrCreationNotAllowed = errors.New("companion limit reached for current plan")

// Service describes the business logic surface for companion operations.
type Service interface {
	List(ctx context.Context, caller *identity.Identity, params ListParams) ([]*Companion, error)
	Library(ctx context.Context, caller *identity.Identity, params ListParams) ([]*Companion, error)
	LookupCompanion(ctx context.Context, id string) *Companion
	ListByAuthor(ctx context.Context, userID string) ([]*Companion, error)
	Bookmarked(ctx context.Context, userID string) ([]*Companion, error)
	Permissions(ctx context.Context, caller *identity.Identity) (entitlement.Decision, error)
	Create(ctx context.Context, caller *identity.Identity, input CreateInput) (*Companion, error)
	CreateFromTemplate(ctx context.Context, caller *identity.Identity, input TemplateInput) (*Companion, error)
}

type service struct {
	repo  Repository
	views view.Invalidator
	log   zerolog.Logger
	now   func() time.Time
}

// NewService wires the companion service with its repository and view invalidator.
func NewService(repo Repository, views view.Invalidator, log zerolog.Logger) Service {
	if views == nil {
		views = view.NoopInvalidator{}
	}
	return &service{
		repo:  repo,
		views: views,
		log:   log.With().Str("component", "companion-service").Logger(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) List(ctx context.Context, caller *identity.Identity, params ListParams) ([]*Companion, error) {
	if !caller.Authenticated() {
		return nil, identity.ErrAuthRequired
	}
	companions, err := s.repo.Find(ctx, ComposeQuery(caller.UserID, params))
	if err != nil {
		return nil, platformerrors.NewStoreError(ctx, err, "failed to fetch companions")
	}
	if companions == nil {
		companions = []*Companion{}
	}
	return companions, nil
}

func (s *service) Library(ctx context.Context, caller *identity.Identity, params ListParams) ([]*Companion, error) {
	companions, err := s.List(ctx, caller, params)
	if err != nil {
		return nil, err
	}
	return LibraryOrder(companions), nil
}

// LookupCompanion returns the companion with the given id or nil. Store failures are logged
// and reported as absence.
func (s *service) LookupCompanion(ctx context.Context, id string) *Companion {
	result, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("companion_id", id).Msg("lookup companion")
		return nil
	}
	return result
}

func (s *service) ListByAuthor(ctx context.Context, userID string) ([]*Companion, error) {
	companions, err := s.repo.FindByAuthor(ctx, userID)
	if err != nil {
		return nil, platformerrors.NewStoreError(ctx, err, "failed to fetch user companions")
	}
	if companions == nil {
		companions = []*Companion{}
	}
	return companions, nil
}

func (s *service) Bookmarked(ctx context.Context, userID string) ([]*Companion, error) {
	companions, err := s.repo.FindBookmarked(ctx, userID)
	if err != nil {
		return nil, platformerrors.NewStoreError(ctx, err, "failed to fetch bookmarked companions")
	}
	if companions == nil {
		companions = []*Companion{}
	}
	return companions, nil
}

func (s *service) Permissions(ctx context.Context, caller *identity.Identity) (entitlement.Decision, error) {
	if !caller.Authenticated() {
		return entitlement.Decision{}, identity.ErrAuthRequired
	}
	count, err := s.repo.CountByAuthor(ctx, caller.UserID)
	if err != nil {
		return entitlement.Decision{}, platformerrors.NewStoreError(ctx, err, "failed to count companions")
	}
	return entitlement.Decide(caller, int(count)), nil
}

func (s *service) Create(ctx context.Context, caller *identity.Identity, input CreateInput) (*Companion, error) {
	decision, err := s.Permissions(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"You have reached your companion limit. Upgrade to create more companions.", ErrCreationNotAllowed, "",
			map[string]any{"limit": decision.Limit, "owned": decision.Owned})
	}
	return s.insert(ctx, caller, input)
}

// CreateFromTemplate inserts a companion with voice and style derived from its subject.
// Templates are not subject to the creation limit.
func (s *service) CreateFromTemplate(ctx context.Context, caller *identity.Identity, input TemplateInput) (*Companion, error) {
	if !caller.Authenticated() {
		return nil, identity.ErrAuthRequired
	}
	return s.insert(ctx, caller, input.toCreateInput())
}

func (s *service) insert(ctx context.Context, caller *identity.Identity, input CreateInput) (*Companion, error) {
	input = input.normalized()
	if input.Voice == "" || input.Style == "" {
		voice, style := DeriveVoiceStyle(input.Subject)
		if input.Voice == "" {
			input.Voice = voice
		}
		if input.Style == "" {
			input.Style = style
		}
	}

	companion := &Companion{
		ID:         uuid.NewString(),
		Name:       input.Name,
		Subject:    input.Subject,
		Topic:      input.Topic,
		Voice:      input.Voice,
		Style:      input.Style,
		Duration:   input.Duration,
		Bookmarked: input.Bookmarked,
		Author:     caller.UserID,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, companion); err != nil {
		return nil, platformerrors.NewStoreError(ctx, err, "failed to create a companion")
	}

	for _, path := range []string{ViewDashboard, ViewLibrary} {
		if err := s.views.Invalidate(ctx, path); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("invalidate view after create")
		}
	}

	s.log.Info().Str("companion_id", companion.ID).Str("author", companion.Author).Msg("companion created")
	return companion, nil
}
