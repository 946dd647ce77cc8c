package tag

import (
	"context"
	"io"
	"log"
	"strings"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/metrics"
	"graetzlmap/internal/repository/tag"
)

type Service struct {
	repo   tag.Repository
	logger *log.Logger
}

func New(repo tag.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]domain.Tag, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, key string) (*domain.Tag, error) {
	return s.repo.Get(ctx, key)
}

// Create adds a new key; an existing key is a conflict.
func (s *Service) Create(ctx context.Context, t domain.Tag) (*domain.Tag, error) {
	t.Key = strings.TrimSpace(t.Key)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	metrics.ObserveWrite("tag", "create")
	s.logger.Printf("tag service: created key=%s", t.Key)
	return out, nil
}

// Update replaces the tag stored under key.
func (s *Service) Update(ctx context.Context, key string, t domain.Tag) (*domain.Tag, error) {
	t.Key = key
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, err
	}
	metrics.ObserveWrite("tag", "update")
	s.logger.Printf("tag service: updated key=%s", key)
	return out, nil
}
