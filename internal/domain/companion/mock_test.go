package companion

import (
	"context"
	"sync"
)

type MockRepository struct {
	FindFn           func(ctx context.Context, q Query) ([]*Companion, error)
	FindByIDFn       func(ctx context.Context, id string) (*Companion, error)
	FindByAuthorFn   func(ctx context.Context, author string) ([]*Companion, error)
	FindBookmarkedFn func(ctx context.Context, userID string) ([]*Companion, error)
	CountByAuthorFn  func(ctx context.Context, author string) (int64, error)
	CreateFn         func(ctx context.Context, c *Companion) error
}

func (m *MockRepository) Find(ctx context.Context, q Query) ([]*Companion, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, q)
	}
	return nil, nil
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Companion, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) FindByAuthor(ctx context.Context, author string) ([]*Companion, error) {
	if m.FindByAuthorFn != nil {
		return m.FindByAuthorFn(ctx, author)
	}
	return nil, nil
}

func (m *MockRepository) FindBookmarked(ctx context.Context, userID string) ([]*Companion, error) {
	if m.FindBookmarkedFn != nil {
		return m.FindBookmarkedFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) CountByAuthor(ctx context.Context, author string) (int64, error) {
	if m.CountByAuthorFn != nil {
		return m.CountByAuthorFn(ctx, author)
	}
	return 0, nil
}

func (m *MockRepository) Create(ctx context.Context, c *Companion) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return r.err
}
