package neighborhood

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/paulmach/orb/geojson"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/slug"
)

type fileRepo struct {
	path   string
	logger *log.Logger
}

// NewFile reads neighborhoods from a GeoJSON FeatureCollection.
func NewFile(path string, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &fileRepo{path: path, logger: logger}
}

func (r *fileRepo) List(_ context.Context) ([]domain.Neighborhood, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Printf("neighborhood repo: read path=%s error=%v", r.path, err)
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}

	result := make([]domain.Neighborhood, 0, len(fc.Features))
	seen := make(map[int]struct{}, len(fc.Features))
	for i, f := range fc.Features {
		n, err := domain.NeighborhoodFromFeature(f, slug.NameToSlug)
		if err != nil {
			return nil, fmt.Errorf("%s feature %d: %w", r.path, i, err)
		}
		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("%s feature %d: duplicate neighborhood id %d", r.path, i, n.ID)
		}
		seen[n.ID] = struct{}{}
		result = append(result, n)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	r.logger.Printf("neighborhood repo: list count=%d", len(result))
	return result, nil
}
