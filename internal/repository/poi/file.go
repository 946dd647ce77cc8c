package poi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/paulmach/orb/geojson"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/jsonfile"
)

// fileRepo keeps one GeoJSON Feature file per POI, named after its id.
type fileRepo struct {
	dir    *jsonfile.Dir
	logger *log.Logger
}

func NewFile(dir string, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &fileRepo{dir: jsonfile.NewDir(dir), logger: logger}
}

func (r *fileRepo) List(ctx context.Context) ([]domain.POI, error) {
	keys, err := r.dir.Keys()
	if err != nil {
		r.logger.Printf("poi repo: list dir=%s error=%v", r.dir.Path(), err)
		return nil, err
	}
	result := make([]domain.POI, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := r.read(key)
		if err != nil {
			r.logger.Printf("poi repo: list skip file=%s error=%v", key, err)
			continue
		}
		result = append(result, *p)
	}
	r.logger.Printf("poi repo: list count=%d", len(result))
	return result, nil
}

func (r *fileRepo) GetByID(_ context.Context, id string) (*domain.POI, error) {
	p, err := r.read(id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Printf("poi repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("poi repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *fileRepo) Create(_ context.Context, p domain.POI) (*domain.POI, error) {
	if err := r.dir.Create(p.ID, p.Feature()); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("poi %s: %w", p.ID, domain.ErrConflict)
		}
		r.logger.Printf("poi repo: create id=%s error=%v", p.ID, err)
		return nil, keyError(err)
	}
	r.logger.Printf("poi repo: created id=%s", p.ID)
	return &p, nil
}

func (r *fileRepo) Update(_ context.Context, p domain.POI) (*domain.POI, error) {
	if err := r.dir.Replace(p.ID, p.Feature()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("poi repo: update id=%s error=%v", p.ID, err)
		return nil, keyError(err)
	}
	r.logger.Printf("poi repo: updated id=%s", p.ID)
	return &p, nil
}

func (r *fileRepo) Delete(_ context.Context, id string) error {
	if err := r.dir.Remove(id); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrNotFound
		}
		return keyError(err)
	}
	r.logger.Printf("poi repo: deleted id=%s", id)
	return nil
}

func (r *fileRepo) read(key string) (*domain.POI, error) {
	var f geojson.Feature
	if err := r.dir.Read(key, &f); err != nil {
		return nil, keyError(err)
	}
	p, err := domain.POIFromFeature(&f)
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = key
	}
	return &p, nil
}

func keyError(err error) error {
	if errors.Is(err, jsonfile.ErrBadKey) {
		return fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}
	return err
}
