package handlers

import (
	"context"
	"net/url"

	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/entitlement"
	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/infrastructure/metrics"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/responses"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

// CompanionHandler invokes companion use cases.
type CompanionHandler struct {
	service companion.Service
	views   viewRenderer
}

func NewCompanionHandler(service companion.Service, views viewRenderer) *CompanionHandler {
	return &CompanionHandler{service: service, views: views}
}

func (h *CompanionHandler) List(ctx context.Context, caller *identity.Identity, params companion.ListParams) (responses.ListResponse[*companion.Companion], error) {
	result, err := h.service.List(ctx, caller, params)
	if err != nil {
		return responses.ListResponse[*companion.Companion]{}, err
	}
	return responses.NewList(result), nil
}

// Library renders the library view, bookmarked companions first.
func (h *CompanionHandler) Library(ctx context.Context, caller *identity.Identity, params companion.ListParams, query url.Values) ([]byte, error) {
	if !caller.Authenticated() {
		return nil, identity.ErrAuthRequired
	}
	return h.views.render(ctx, companion.ViewLibrary, ViewVariant(caller.UserID, query), func() (any, error) {
		result, err := h.service.Library(ctx, caller, params)
		if err != nil {
			return nil, err
		}
		return responses.NewList(result), nil
	})
}

// Get returns the companion or a not found error. Store failures also read as not found.
func (h *CompanionHandler) Get(ctx context.Context, id string) (*companion.Companion, error) {
	result := h.service.LookupCompanion(ctx, id)
	if result == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeNotFound, "companion not found", nil, "")
	}
	return result, nil
}

func (h *CompanionHandler) Permissions(ctx context.Context, caller *identity.Identity) (entitlement.Decision, error) {
	return h.service.Permissions(ctx, caller)
}

func (h *CompanionHandler) Create(ctx context.Context, caller *identity.Identity, input companion.CreateInput) (*companion.Companion, error) {
	result, err := h.service.Create(ctx, caller, input)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
			metrics.RecordCreationDenied()
		}
		return nil, err
	}
	metrics.RecordCompanionCreated("explicit")
	return result, nil
}

func (h *CompanionHandler) CreateFromTemplate(ctx context.Context, caller *identity.Identity, input companion.TemplateInput) (*companion.Companion, error) {
	result, err := h.service.CreateFromTemplate(ctx, caller, input)
	if err != nil {
		return nil, err
	}
	metrics.RecordCompanionCreated("template")
	return result, nil
}

func (h *CompanionHandler) ListByAuthor(ctx context.Context, caller *identity.Identity) (responses.ListResponse[*companion.Companion], error) {
	if !caller.Authenticated() {
		return responses.ListResponse[*companion.Companion]{}, identity.ErrAuthRequired
	}
	result, err := h.service.ListByAuthor(ctx, caller.UserID)
	if err != nil {
		return responses.ListResponse[*companion.Companion]{}, err
	}
	return responses.NewList(result), nil
}

func (h *CompanionHandler) Bookmarked(ctx context.Context, caller *identity.Identity) (responses.ListResponse[*companion.Companion], error) {
	if !caller.Authenticated() {
		return responses.ListResponse[*companion.Companion]{}, identity.ErrAuthRequired
	}
	result, err := h.service.Bookmarked(ctx, caller.UserID)
	if err != nil {
		return responses.ListResponse[*companion.Companion]{}, err
	}
	return responses.NewList(result), nil
}
