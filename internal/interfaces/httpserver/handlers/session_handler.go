package handlers

import (
	"context"

	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/domain/sessionhistory"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/responses"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

type SessionHandler struct {
	service    *sessionhistory.Service
	companions companion.Service
}

func NewSessionHandler(service *sessionhistory.Service, companions companion.Service) *SessionHandler {
	return &SessionHandler{service: service, companions: companions}
}

// Record appends a session for an existing companion.
func (h *SessionHandler) Record(ctx context.Context, caller *identity.Identity, companionID string) (*sessionhistory.Entry, error) {
	if !caller.Authenticated() {
		return nil, identity.ErrAuthRequired
	}
	if h.companions.LookupCompanion(ctx, companionID) == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeNotFound, "companion not found", nil, "")
	}
	return h.service.Record(ctx, caller, companionID)
}

func (h *SessionHandler) Recent(ctx context.Context, caller *identity.Identity, limit int) (responses.ListResponse[*companion.Companion], error) {
	if !caller.Authenticated() {
		return responses.ListResponse[*companion.Companion]{}, identity.ErrAuthRequired
	}
	result, err := h.service.Recent(ctx, limit)
	if err != nil {
		return responses.ListResponse[*companion.Companion]{}, err
	}
	return responses.NewList(result), nil
}

func (h *SessionHandler) ForUser(ctx context.Context, caller *identity.Identity, limit int) (responses.ListResponse[*companion.Companion], error) {
	if !caller.Authenticated() {
		return responses.ListResponse[*companion.Companion]{}, identity.ErrAuthRequired
	}
	result, err := h.service.ForUser(ctx, caller.UserID, limit)
	if err != nil {
		return responses.ListResponse[*companion.Companion]{}, err
	}
	return responses.NewList(result), nil
}
