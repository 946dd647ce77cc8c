package poi

import (
	"context"

	"graetzlmap/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.POI, error)
	GetByID(ctx context.Context, id string) (*domain.POI, error)
	// Create fails with domain.ErrConflict when the id is taken.
	Create(ctx context.Context, p domain.POI) (*domain.POI, error)
	// Update fails with domain.ErrNotFound when the id does not exist.
	Update(ctx context.Context, p domain.POI) (*domain.POI, error)
	Delete(ctx context.Context, id string) error
}
