package bookmark

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/domain/view"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

// Service adds and removes bookmarks.
//
// A write is two steps: the bookmark row, then companions.bookmarked. Without a Transactor
// the steps are independent; a failed second step leaves the row in place and the flag
// stale, and the caller receives the error. Row existence is authoritative.
type Service struct {
	repo  Repository
	tx    Transactor
	views view.Invalidator
	log   zerolog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithTransactor makes both steps commit or roll back together.
func WithTransactor(tx Transactor) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

// NewService builds the bookmark service.
func NewService(repo Repository, views view.Invalidator, log zerolog.Logger, opts ...Option) *Service {
	if views == nil {
		views = view.NoopInvalidator{}
	}
	s := &Service{
		repo:  repo,
		views: views,
		log:   log.With().Str("component", "bookmark-service").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add bookmarks companionID for the caller and invalidates path. An unauthenticated caller
// is a no-op.
func (s *Service) Add(ctx context.Context, caller *identity.Identity, companionID, path string) error {
	return s.apply(ctx, caller, OperationAdd, companionID, path)
}

// Remove deletes the caller's bookmark of companionID and invalidates path. An
// unauthenticated caller is a no-op.
func (s *Service) Remove(ctx context.Context, caller *identity.Identity, companionID, path string) error {
	return s.apply(ctx, caller, OperationRemove, companionID, path)
}

func (s *Service) apply(ctx context.Context, caller *identity.Identity, op Operation, companionID, path string) error {
	if !caller.Authenticated() {
		return nil
	}

	write := func(ctx context.Context) error {
		return s.write(ctx, op, companionID, caller.UserID)
	}
	var err error
	if s.tx != nil {
		err = s.tx.InTx(ctx, write)
	} else {
		err = write(ctx)
	}
	if err != nil {
		return s.storeError(ctx, err, op, companionID, caller.UserID)
	}

	if strings.TrimSpace(path) == "" {
		path = DefaultViewPath
	}
	if err := s.views.Invalidate(ctx, path); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("invalidate view after bookmark")
	}
	return nil
}

func (s *Service) write(ctx context.Context, op Operation, companionID, userID string) error {
	var rowErr error
	if op == OperationAdd {
		rowErr = s.repo.Insert(ctx, companionID, userID)
	} else {
		rowErr = s.repo.Delete(ctx, companionID, userID)
	}
	if rowErr != nil {
		return &WriteError{Operation: op, Step: StepRow, Err: rowErr}
	}

	if err := s.repo.SetFlag(ctx, companionID, op == OperationAdd); err != nil {
		return &WriteError{Operation: op, Step: StepFlag, Err: err}
	}
	return nil
}

func (s *Service) storeError(ctx context.Context, err error, op Operation, companionID, userID string) error {
	writeErr, ok := err.(*WriteError)
	if !ok {
		writeErr = &WriteError{Operation: op, Step: StepRow, Err: err}
	}
	if s.tx != nil {
		writeErr.RolledBack = true
	}

	event := s.log.Error()
	if errors.Is(writeErr, ErrPartialWrite) {
		event = s.log.Warn()
	}
	event.Err(writeErr.Err).
		Str("operation", string(op)).
		Str("step", string(writeErr.Step)).
		Str("companion_id", companionID).
		Str("user_id", userID).
		Bool("atomic", s.tx != nil).
		Msg("bookmark write failed")

	fallback := "failed to add bookmark"
	if op == OperationRemove {
		fallback = "failed to remove bookmark"
	}
	message := fallback
	if platformErr := platformerrors.GetPlatformError(writeErr.Err); platformErr != nil {
		message = platformErr.Message
	} else if text := strings.TrimSpace(writeErr.Err.Error()); text != "" {
		message = text
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeDatabaseError,
		message, writeErr, "", map[string]any{
			"operation":    string(op),
			"step":         string(writeErr.Step),
			"companion_id": companionID,
		})
}
