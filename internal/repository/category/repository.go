package category

import (
	"context"

	"graetzlmap/internal/domain"
)

// Repository stores categories by key. Categories are only added or updated.
type Repository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, key string) (*domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c domain.Category) (*domain.Category, error)
}
