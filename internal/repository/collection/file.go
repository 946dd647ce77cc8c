package collection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/jsonfile"
)

// fileRepo keeps each kind in its own document, lists.json as {"lists": [...]}
// and walkthroughs.json as {"walkthroughs": [...]}.
type fileRepo struct {
	dataDir string
	logger  *log.Logger
}

func NewFile(dataDir string, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &fileRepo{dataDir: dataDir, logger: logger}
}

func (r *fileRepo) file(kind domain.CollectionKind) (*jsonfile.File, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown collection kind %q", domain.ErrInvalid, kind)
	}
	return jsonfile.NewFile(filepath.Join(r.dataDir, kind.Plural()+".json")), nil
}

func (r *fileRepo) List(_ context.Context, kind domain.CollectionKind) ([]domain.Collection, error) {
	f, err := r.file(kind)
	if err != nil {
		return nil, err
	}
	doc := map[string][]domain.Collection{}
	if err := f.Read(&doc); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Printf("collection repo: read path=%s error=%v", f.Path(), err)
		return nil, err
	}
	items := doc[kind.Plural()]
	result := make([]domain.Collection, 0, len(items))
	for _, c := range items {
		c.Kind = kind
		result = append(result, c)
	}
	return result, nil
}

func (r *fileRepo) GetByID(ctx context.Context, kind domain.CollectionKind, id string) (*domain.Collection, error) {
	return r.find(ctx, kind, func(c domain.Collection) bool { return c.ID == id })
}

func (r *fileRepo) GetBySlug(ctx context.Context, kind domain.CollectionKind, slug string) (*domain.Collection, error) {
	return r.find(ctx, kind, func(c domain.Collection) bool { return c.Slug == slug })
}

func (r *fileRepo) find(ctx context.Context, kind domain.CollectionKind, match func(domain.Collection) bool) (*domain.Collection, error) {
	items, err := r.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	for _, c := range items {
		if match(c) {
			c := c
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fileRepo) Create(_ context.Context, c domain.Collection) (*domain.Collection, error) {
	err := r.update(c.Kind, func(items []domain.Collection) ([]domain.Collection, error) {
		for _, existing := range items {
			if existing.ID == c.ID {
				return nil, fmt.Errorf("%s %s: %w", c.Kind, c.ID, domain.ErrConflict)
			}
		}
		c.Slug = UniqueSlug(items, c.ID, c.Slug)
		return append(items, c), nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.Printf("collection repo: created kind=%s id=%s slug=%s", c.Kind, c.ID, c.Slug)
	return &c, nil
}

func (r *fileRepo) Update(_ context.Context, c domain.Collection) (*domain.Collection, error) {
	err := r.update(c.Kind, func(items []domain.Collection) ([]domain.Collection, error) {
		for i := range items {
			if items[i].ID == c.ID {
				c.Slug = UniqueSlug(items, c.ID, c.Slug)
				carryOver(&c, items[i])
				items[i] = c
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	r.logger.Printf("collection repo: updated kind=%s id=%s", c.Kind, c.ID)
	return &c, nil
}

func (r *fileRepo) Delete(_ context.Context, kind domain.CollectionKind, id string) error {
	err := r.update(kind, func(items []domain.Collection) ([]domain.Collection, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return err
	}
	r.logger.Printf("collection repo: deleted kind=%s id=%s", kind, id)
	return nil
}

func (r *fileRepo) update(kind domain.CollectionKind, fn func([]domain.Collection) ([]domain.Collection, error)) error {
	f, err := r.file(kind)
	if err != nil {
		return err
	}
	doc := map[string][]domain.Collection{}
	return f.Update(&doc, func() error {
		items, err := fn(doc[kind.Plural()])
		if err != nil {
			return err
		}
		if items == nil {
			items = []domain.Collection{}
		}
		doc[kind.Plural()] = items
		return nil
	})
}
