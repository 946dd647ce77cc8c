package tag

import (
	"context"

	"graetzlmap/internal/domain"
)

// Repository stores tags by key. Tags are only added or updated.
type Repository interface {
	List(ctx context.Context) ([]domain.Tag, error)
	Get(ctx context.Context, key string) (*domain.Tag, error)
	Create(ctx context.Context, c domain.Tag) (*domain.Tag, error)
	Update(ctx context.Context, c domain.Tag) (*domain.Tag, error)
}
