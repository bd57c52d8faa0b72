package companion

import "context"

// Repository exposes data access for companions.
type Repository interface {
	Find(ctx context.Context, q Query) ([]*Companion, error)
	// FindByID returns (nil, nil) when no companion has the id.
	FindByID(ctx context.Context, id string) (*Companion, error)
	FindByAuthor(ctx context.Context, author string) ([]*Companion, error)
	FindBookmarked(ctx context.Context, userID string) ([]*Companion, error)
	CountByAuthor(ctx context.Context, author string) (int64, error)
	Create(ctx context.Context, c *Companion) error
}
