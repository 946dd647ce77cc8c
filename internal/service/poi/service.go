package poi

import (
	"context"
	"io"
	"log"
	"strings"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/metrics"
	poirepo "graetzlmap/internal/repository/poi"
)

// Invalidator is notified after every successful mutation so query results
// pick up the change.
type Invalidator interface {
	Invalidate()
}

type Service struct {
	repo   poirepo.Repository
	cache  Invalidator
	logger *log.Logger
}

func New(repo poirepo.Repository, cache Invalidator, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]domain.POI, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.POI, error) {
	return s.repo.GetByID(ctx, id)
}

// Create assigns a fresh id unless the caller supplied one. Identical
// submissions are stored twice.
func (s *Service) Create(ctx context.Context, p domain.POI) (*domain.POI, error) {
	p = normalize(p)
	if p.ID == "" {
		p.ID = domain.NewID("poi")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.changed("create", out.ID)
	return out, nil
}

// Update replaces the POI stored under id. The id from the path always wins
// over one in the payload.
func (s *Service) Update(ctx context.Context, id string, p domain.POI) (*domain.POI, error) {
	p = normalize(p)
	p.ID = id
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.changed("update", id)
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed("delete", id)
	return nil
}

func (s *Service) changed(op, id string) {
	metrics.ObserveWrite("poi", op)
	if s.cache != nil {
		s.cache.Invalidate()
	}
	s.logger.Printf("poi service: %s id=%s", op, id)
}

func normalize(p domain.POI) domain.POI {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	tags := make([]string, 0, len(p.Tags))
	seen := make(map[string]struct{}, len(p.Tags))
	for _, t := range p.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	p.Tags = tags
	return p
}
