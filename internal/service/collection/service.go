package collection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/geoquery"
	"graetzlmap/internal/metrics"
	"graetzlmap/internal/repository/collection"
	"graetzlmap/internal/slug"
)

// DatasetLoader provides the current POIs for reference checks and legs.
type DatasetLoader interface {
	Load(ctx context.Context) (*geoquery.Dataset, error)
}

type Service struct {
	repo   collection.Repository
	data   DatasetLoader
	logger *log.Logger
	now    func() time.Time
}

func New(repo collection.Repository, data DatasetLoader, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, data: data, logger: logger, now: time.Now}
}

func (s *Service) List(ctx context.Context, kind domain.CollectionKind) ([]domain.Collection, error) {
	return s.repo.List(ctx, kind)
}

func (s *Service) Get(ctx context.Context, kind domain.CollectionKind, id string) (*domain.Collection, error) {
	return s.repo.GetByID(ctx, kind, id)
}

// Create stores a new list or walkthrough with a generated id. An empty slug
// is derived from the German title; the repository makes it unique within the
// kind.
func (s *Service) Create(ctx context.Context, c domain.Collection) (*domain.Collection, error) {
	c.ID = domain.NewID(string(c.Kind))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.Slug = slugBase(c)
	c.CreatedAt = s.now().UTC()
	c.UpdatedAt = c.CreatedAt
	s.checkReferences(ctx, c)

	out, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	metrics.ObserveWrite(string(c.Kind), "create")
	s.logger.Printf("collection service: created kind=%s id=%s slug=%s", c.Kind, c.ID, out.Slug)
	return out, nil
}

// Update replaces the collection stored under id. The repository keeps the
// creation time, and the previous UpdatedAt when nothing changed, so sending
// the same payload twice stores the same record.
func (s *Service) Update(ctx context.Context, kind domain.CollectionKind, id string, c domain.Collection) (*domain.Collection, error) {
	c.ID = id
	c.Kind = kind
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.Slug = slugBase(c)
	c.UpdatedAt = s.now().UTC()
	s.checkReferences(ctx, c)

	out, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	metrics.ObserveWrite(string(kind), "update")
	s.logger.Printf("collection service: updated kind=%s id=%s", kind, id)
	return out, nil
}

func (s *Service) Delete(ctx context.Context, kind domain.CollectionKind, id string) error {
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return err
	}
	metrics.ObserveWrite(string(kind), "delete")
	s.logger.Printf("collection service: deleted kind=%s id=%s", kind, id)
	return nil
}

// BySlug resolves a shared link. Lists are searched before walkthroughs.
func (s *Service) BySlug(ctx context.Context, name string) (*domain.Collection, error) {
	for _, kind := range []domain.CollectionKind{domain.KindList, domain.KindWalkthrough} {
		c, err := s.repo.GetBySlug(ctx, kind, name)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
}

// Route is a collection with its stops resolved against the current POIs.
type Route struct {
	Collection domain.Collection
	Stops      []domain.POI
	Missing    []string
	Legs       []geoquery.Leg
	LengthKm   float64
}

// Route resolves the stops of a collection and, for walkthroughs, the legs
// between them.
func (s *Service) Route(ctx context.Context, c domain.Collection) (*Route, error) {
	d, err := s.data.Load(ctx)
	if err != nil {
		return nil, err
	}
	stops, missing := geoquery.Stops(c, d)
	legs := geoquery.WalkthroughLegs(c, d)
	if len(missing) > 0 {
		s.logger.Printf("collection service: %s id=%s unresolved pois=%s", c.Kind, c.ID, strings.Join(missing, ","))
	}
	return &Route{
		Collection: c,
		Stops:      stops,
		Missing:    missing,
		Legs:       legs,
		LengthKm:   geoquery.PathLength(legs),
	}, nil
}

// slugBase is the requested slug, or the German title, in slug form.
func slugBase(c domain.Collection) string {
	if base := slug.NameToSlug(c.Slug); base != "" {
		return base
	}
	if base := slug.NameToSlug(c.Title.Resolve("de", "en")); base != "" {
		return base
	}
	return string(c.Kind)
}

// checkReferences logs POI ids that do not exist. Dangling references are
// kept; the map skips them when rendering.
func (s *Service) checkReferences(ctx context.Context, c domain.Collection) {
	if s.data == nil || len(c.POIs) == 0 {
		return
	}
	d, err := s.data.Load(ctx)
	if err != nil {
		s.logger.Printf("collection service: skip reference check: %v", err)
		return
	}
	known := make(map[string]struct{}, len(d.POIs))
	for _, p := range d.POIs {
		known[p.ID] = struct{}{}
	}
	if missing := c.MissingPOIs(known); len(missing) > 0 {
		s.logger.Printf("collection service: %s id=%s references unknown pois=%s", c.Kind, c.ID, strings.Join(missing, ","))
	}
}
