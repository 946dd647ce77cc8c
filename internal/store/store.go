// Package store opens the repositories for the configured backend.
package store

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"graetzlmap/internal/config"
	"graetzlmap/internal/db"
	categoryrepo "graetzlmap/internal/repository/category"
	collectionrepo "graetzlmap/internal/repository/collection"
	neighborhoodrepo "graetzlmap/internal/repository/neighborhood"
	poirepo "graetzlmap/internal/repository/poi"
	tagrepo "graetzlmap/internal/repository/tag"
)

// Store bundles one repository per resource. Pool is nil unless the postgres
// backend is active.
type Store struct {
	POIs          poirepo.Repository
	Categories    categoryrepo.Repository
	Tags          tagrepo.Repository
	Collections   collectionrepo.Repository
	Neighborhoods neighborhoodrepo.Repository
	Pool          *pgxpool.Pool
}

// Open builds the repositories. Static mode always reads POIs from the
// compiled bundle; neighborhoods always come from the boundary file.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{Neighborhoods: neighborhoodrepo.NewFile(cfg.NeighborhoodsFile(), logger)}

	switch cfg.StoreBackend {
	case config.BackendFile:
		s.POIs = poirepo.NewFile(cfg.POIDir(), logger)
		s.Categories = categoryrepo.NewFile(cfg.CategoriesFile(), logger)
		s.Tags = tagrepo.NewFile(cfg.TagsFile(), logger)
		s.Collections = collectionrepo.NewFile(cfg.DataDir, logger)
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to db: %w", err)
		}
		s.Pool = pool
		s.POIs = poirepo.NewPostgres(pool, logger)
		s.Categories = categoryrepo.NewPostgres(pool, logger)
		s.Tags = tagrepo.NewPostgres(pool, logger)
		s.Collections = collectionrepo.NewPostgres(pool, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if cfg.Mode == config.ModeStatic {
		s.POIs = poirepo.NewBundle(cfg.POIBundle, logger)
	}
	logger.Printf("store: backend=%s mode=%s", cfg.StoreBackend, cfg.Mode)
	return s, nil
}

// Ping checks the database when there is one.
func (s *Store) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return nil
	}
	return s.Pool.Ping(ctx)
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
