package view

import (
	"context"
	"time"
)

// Invalidator drops every cached rendering of a view path.
type Invalidator interface {
	Invalidate(ctx context.Context, path string) error
}

// Cache stores rendered views keyed by path and a caller specific variant.
type Cache interface {
	Invalidator
	Get(ctx context.Context, path, variant string) ([]byte, bool, error)
	Set(ctx context.Context, path, variant string, payload []byte, ttl time.Duration) error
}

// NoopInvalidator satisfies Invalidator without doing anything.
type NoopInvalidator struct{}

func (NoopInvalidator) Invalidate(context.Context, string) error { return nil }
