package category

import (
	"context"
	"io"
	"log"
	"strings"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/metrics"
	"graetzlmap/internal/repository/category"
)

type Service struct {
	repo   category.Repository
	logger *log.Logger
}

func New(repo category.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, key string) (*domain.Category, error) {
	return s.repo.Get(ctx, key)
}

// Create adds a new key; an existing key is a conflict.
func (s *Service) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.Key = strings.TrimSpace(c.Key)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	metrics.ObserveWrite("category", "create")
	s.logger.Printf("category service: created key=%s", c.Key)
	return out, nil
}

// Update replaces the category stored under key.
func (s *Service) Update(ctx context.Context, key string, c domain.Category) (*domain.Category, error) {
	c.Key = key
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	metrics.ObserveWrite("category", "update")
	s.logger.Printf("category service: updated key=%s", key)
	return out, nil
}
