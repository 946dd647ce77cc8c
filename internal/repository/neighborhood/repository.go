package neighborhood

import (
	"context"

	"graetzlmap/internal/domain"
)

// Repository lists neighborhood boundaries. Boundaries are maintained outside
// the application and are never written.
type Repository interface {
	List(ctx context.Context) ([]domain.Neighborhood, error)
}
