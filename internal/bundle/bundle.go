// Package bundle compiles the per-POI files into the single FeatureCollection
// the static site ships.
package bundle

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/jsonfile"
)

type POILister interface {
	List(ctx context.Context) ([]domain.POI, error)
}

// Result summarizes a compile run.
type Result struct {
	Written int
	Skipped []string
}

type Compiler struct {
	src    POILister
	logger *log.Logger
}

func New(src POILister, logger *log.Logger) *Compiler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Compiler{src: src, logger: logger}
}

// Compile writes every valid POI, ordered by id, to out. Invalid POIs are
// skipped and reported; the previous bundle stays in place if listing fails.
func (c *Compiler) Compile(ctx context.Context, out string) (Result, error) {
	pois, err := c.src.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list pois: %w", err)
	}
	sort.Slice(pois, func(i, j int) bool { return pois[i].ID < pois[j].ID })

	var res Result
	valid := make([]domain.POI, 0, len(pois))
	for _, p := range pois {
		if err := p.Validate(); err != nil {
			c.logger.Printf("bundle: skip id=%s: %v", p.ID, err)
			res.Skipped = append(res.Skipped, p.ID)
			continue
		}
		valid = append(valid, p)
	}

	if err := jsonfile.NewFile(out).Write(domain.FeatureCollection(valid)); err != nil {
		return Result{}, fmt.Errorf("write bundle: %w", err)
	}
	res.Written = len(valid)
	c.logger.Printf("bundle: wrote path=%s count=%d skipped=%d", out, res.Written, len(res.Skipped))
	return res, nil
}
