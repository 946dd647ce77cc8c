package category

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/jsonfile"
)

// document is the layout of categories.json.
type document struct {
	Categories map[string]domain.Category `json:"categories"`
}

type fileRepo struct {
	file   *jsonfile.File
	logger *log.Logger
}

func NewFile(path string, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &fileRepo{file: jsonfile.NewFile(path), logger: logger}
}

func (r *fileRepo) read() (map[string]domain.Category, error) {
	var doc document
	if err := r.file.Read(&doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]domain.Category{}, nil
		}
		r.logger.Printf("category repo: read path=%s error=%v", r.file.Path(), err)
		return nil, err
	}
	return doc.Categories, nil
}

func (r *fileRepo) List(_ context.Context) ([]domain.Category, error) {
	m, err := r.read()
	if err != nil {
		return nil, err
	}
	result := make([]domain.Category, 0, len(m))
	for key, c := range m {
		c.Key = key
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (r *fileRepo) Get(_ context.Context, key string) (*domain.Category, error) {
	m, err := r.read()
	if err != nil {
		return nil, err
	}
	c, ok := m[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Key = key
	return &c, nil
}

func (r *fileRepo) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	var doc document
	err := r.file.Update(&doc, func() error {
		if doc.Categories == nil {
			doc.Categories = map[string]domain.Category{}
		}
		if _, ok := doc.Categories[c.Key]; ok {
			return fmt.Errorf("category %s: %w", c.Key, domain.ErrConflict)
		}
		doc.Categories[c.Key] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.Printf("category repo: created key=%s", c.Key)
	return &c, nil
}

func (r *fileRepo) Update(_ context.Context, c domain.Category) (*domain.Category, error) {
	var doc document
	err := r.file.Update(&doc, func() error {
		if _, ok := doc.Categories[c.Key]; !ok {
			return domain.ErrNotFound
		}
		doc.Categories[c.Key] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.Printf("category repo: updated key=%s", c.Key)
	return &c, nil
}
