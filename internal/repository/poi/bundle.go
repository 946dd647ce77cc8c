package poi

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/paulmach/orb/geojson"

	"graetzlmap/internal/domain"
)

// bundleRepo serves the compiled FeatureCollection used by static builds. It
// is read-only; the file is parsed once.
type bundleRepo struct {
	path   string
	logger *log.Logger

	once sync.Once
	pois []domain.POI
	err  error
}

func NewBundle(path string, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &bundleRepo{path: path, logger: logger}
}

func (r *bundleRepo) load() ([]domain.POI, error) {
	r.once.Do(func() {
		r.pois, r.err = ReadBundle(r.path)
		if r.err != nil {
			r.logger.Printf("poi bundle: load path=%s error=%v", r.path, r.err)
			return
		}
		r.logger.Printf("poi bundle: loaded path=%s count=%d", r.path, len(r.pois))
	})
	return r.pois, r.err
}

func (r *bundleRepo) List(_ context.Context) ([]domain.POI, error) {
	pois, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.POI, len(pois))
	copy(out, pois)
	return out, nil
}

func (r *bundleRepo) GetByID(_ context.Context, id string) (*domain.POI, error) {
	pois, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, p := range pois {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *bundleRepo) Create(context.Context, domain.POI) (*domain.POI, error) {
	return nil, domain.ErrReadOnly
}

func (r *bundleRepo) Update(context.Context, domain.POI) (*domain.POI, error) {
	return nil, domain.ErrReadOnly
}

func (r *bundleRepo) Delete(context.Context, string) error {
	return domain.ErrReadOnly
}

// ReadBundle parses a FeatureCollection of POIs. Features that are not
// points are rejected.
func ReadBundle(path string) ([]domain.POI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	pois := make([]domain.POI, 0, len(fc.Features))
	for i, f := range fc.Features {
		p, err := domain.POIFromFeature(f)
		if err != nil {
			return nil, fmt.Errorf("%s feature %d: %w", path, i, err)
		}
		pois = append(pois, p)
	}
	return pois, nil
}
