package handlers

import (
	"context"
	"errors"

	"github.com/janhq/companion-api/internal/domain/bookmark"
	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/infrastructure/metrics"
)

type BookmarkHandler struct {
	service *bookmark.Service
}

func NewBookmarkHandler(service *bookmark.Service) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

func (h *BookmarkHandler) Add(ctx context.Context, caller *identity.Identity, companionID, path string) error {
	err := h.service.Add(ctx, caller, companionID, path)
	h.record(caller, bookmark.OperationAdd, err)
	return err
}

func (h *BookmarkHandler) Remove(ctx context.Context, caller *identity.Identity, companionID, path string) error {
	err := h.service.Remove(ctx, caller, companionID, path)
	h.record(caller, bookmark.OperationRemove, err)
	return err
}

func (h *BookmarkHandler) record(caller *identity.Identity, op bookmark.Operation, err error) {
	if !caller.Authenticated() {
		return
	}
	metrics.RecordBookmarkWrite(string(op), err, errors.Is(err, bookmark.ErrPartialWrite))
}
