package geoquery

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/metrics"
)

// Source provides the raw collections the dataset is built from.
type Source interface {
	LoadPOIs(ctx context.Context) ([]domain.POI, error)
	LoadNeighborhoods(ctx context.Context) ([]domain.Neighborhood, error)
}

// Dataset is an immutable snapshot shared by all queries until the cache is
// invalidated.
type Dataset struct {
	POIs          []domain.POI
	Neighborhoods []domain.Neighborhood
	LoadedAt      time.Time
}

// Empty is returned to callers that degrade after a load failure.
var Empty = &Dataset{}

// POIIndex maps POI ids to their position in POIs.
func (d *Dataset) POIIndex() map[string]int {
	idx := make(map[string]int, len(d.POIs))
	for i, p := range d.POIs {
		idx[p.ID] = i
	}
	return idx
}

// Cache memoizes one Dataset per process. Load is idempotent; Invalidate
// forces the next Load to read the source again.
type Cache struct {
	src    Source
	logger *log.Logger

	mu   sync.Mutex
	data *Dataset
}

func NewCache(src Source, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Cache{src: src, logger: logger}
}

// Load returns the cached dataset, reading the source on first use. Failed
// loads are not memoized and wrap domain.ErrLoad.
func (c *Cache) Load(ctx context.Context) (*Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data != nil {
		return c.data, nil
	}

	pois, err := c.src.LoadPOIs(ctx)
	if err != nil {
		metrics.ObserveLoad(0, 0, err)
		return nil, fmt.Errorf("%w: pois: %v", domain.ErrLoad, err)
	}
	neighborhoods, err := c.src.LoadNeighborhoods(ctx)
	if err != nil {
		metrics.ObserveLoad(0, 0, err)
		return nil, fmt.Errorf("%w: neighborhoods: %v", domain.ErrLoad, err)
	}
	c.data = &Dataset{POIs: pois, Neighborhoods: neighborhoods, LoadedAt: time.Now().UTC()}
	metrics.ObserveLoad(len(pois), len(neighborhoods), nil)
	c.logger.Printf("geoquery: dataset loaded pois=%d neighborhoods=%d", len(pois), len(neighborhoods))
	return c.data, nil
}

// LoadOrEmpty degrades a load failure to an empty dataset and logs it.
func (c *Cache) LoadOrEmpty(ctx context.Context) *Dataset {
	d, err := c.Load(ctx)
	if err != nil {
		c.logger.Printf("geoquery: %v; serving empty dataset", err)
		return Empty
	}
	return d
}

// Invalidate drops the memoized dataset.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.data = nil
	c.mu.Unlock()
	c.logger.Printf("geoquery: dataset invalidated")
}

// POILister and NeighborhoodLister are the read halves of the repositories.
type POILister interface {
	List(ctx context.Context) ([]domain.POI, error)
}

type NeighborhoodLister interface {
	List(ctx context.Context) ([]domain.Neighborhood, error)
}

// RepositorySource adapts the POI and neighborhood repositories to Source.
type RepositorySource struct {
	POIs          POILister
	Neighborhoods NeighborhoodLister
}

func (s RepositorySource) LoadPOIs(ctx context.Context) ([]domain.POI, error) {
	return s.POIs.List(ctx)
}

func (s RepositorySource) LoadNeighborhoods(ctx context.Context) ([]domain.Neighborhood, error) {
	return s.Neighborhoods.List(ctx)
}
