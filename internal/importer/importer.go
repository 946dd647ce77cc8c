package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/slug"
)

type POIWriter interface {
	Create(ctx context.Context, p domain.POI) (*domain.POI, error)
	Update(ctx context.Context, p domain.POI) (*domain.POI, error)
}

type CategoryWriter interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type Kind string

const (
	KindPOIs       Kind = "pois"
	KindCategories Kind = "categories"
)

// DetectKind looks at the header row: coordinates mean POIs, a key column
// without coordinates means categories.
func DetectKind(r io.Reader) (Kind, error) {
	headers, err := csv.NewReader(r).Read()
	if err != nil {
		return "", fmt.Errorf("read headers: %w", err)
	}
	return kindOf(headerIndex(headers))
}

func kindOf(index map[string]int) (Kind, error) {
	_, hasLng := index["lng"]
	_, hasLat := index["lat"]
	if hasLng && hasLat {
		return KindPOIs, nil
	}
	if _, ok := index["key"]; ok {
		return KindCategories, nil
	}
	return "", errors.New("unrecognized csv header: need lng/lat or key")
}

// CSVImporter reads spreadsheet exports and upserts POIs or categories.
// Re-running an import updates records in place.
type CSVImporter struct {
	reader     *csv.Reader
	pois       POIWriter
	categories CategoryWriter
	logger     *log.Logger
}

func NewCSVImporter(r io.Reader, pois POIWriter, categories CategoryWriter, logger *log.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CSVImporter{
		reader:     csvr,
		pois:       pois,
		categories: categories,
		logger:     logger,
	}
}

// Run parses the rows and returns how many records were written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	kind, err := kindOf(index)
	if err != nil {
		return 0, err
	}
	switch kind {
	case KindCategories:
		if i.categories == nil {
			return 0, errors.New("category import needs a category writer")
		}
		return i.runCategories(ctx, index)
	default:
		if i.pois == nil {
			return 0, errors.New("poi import needs a poi writer")
		}
		return i.runPOIs(ctx, index)
	}
}

func (i *CSVImporter) runPOIs(ctx context.Context, index map[string]int) (int, error) {
	var (
		current  *domain.POI
		imported int
		line     = 1
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row, err := parsePOIRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if row == nil {
			continue
		}

		if row.Name != "" {
			if current != nil {
				if err := i.savePOI(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows carry extra tags for the current POI.
		if current != nil {
			current.Tags = append(current.Tags, row.Tags...)
		}
	}

	if current != nil {
		if err := i.savePOI(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) savePOI(ctx context.Context, p *domain.POI) error {
	if p.ID == "" {
		p.ID = slug.NameToSlug(p.Name)
	}
	p.Tags = dedupe(p.Tags)
	if err := p.Validate(); err != nil {
		return fmt.Errorf("poi %q: %w", p.ID, err)
	}
	_, err := i.pois.Create(ctx, *p)
	if errors.Is(err, domain.ErrConflict) {
		_, err = i.pois.Update(ctx, *p)
		if err == nil {
			i.logger.Printf("importer: updated poi id=%s", p.ID)
		}
	}
	if err != nil {
		return fmt.Errorf("save poi %q: %w", p.ID, err)
	}
	return nil
}

func (i *CSVImporter) runCategories(ctx context.Context, index map[string]int) (int, error) {
	var imported int
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		c := parseCategoryRow(record, index)
		if c.Key == "" {
			continue
		}
		if err := c.Validate(); err != nil {
			return imported, fmt.Errorf("category %q: %w", c.Key, err)
		}
		_, err = i.categories.Create(ctx, c)
		if errors.Is(err, domain.ErrConflict) {
			_, err = i.categories.Update(ctx, c)
		}
		if err != nil {
			return imported, fmt.Errorf("save category %q: %w", c.Key, err)
		}
		imported++
	}
	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parsePOIRow(record []string, index map[string]int) (*domain.POI, error) {
	name := pick(record, index, "name")
	tags := splitList(pick(record, index, "tags"))
	if name == "" && len(tags) == 0 {
		return nil, nil
	}
	p := &domain.POI{
		ID:          pick(record, index, "id"),
		Name:        name,
		Category:    pick(record, index, "category"),
		Description: localized(record, index, "description"),
		Link:        pick(record, index, "link"),
		Instagram:   pick(record, index, "instagram"),
		Photo:       pick(record, index, "photo"),
		Tags:        tags,
	}
	if name == "" {
		return p, nil
	}
	lng, err := strconv.ParseFloat(pick(record, index, "lng"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad lng for %q", domain.ErrInvalid, name)
	}
	lat, err := strconv.ParseFloat(pick(record, index, "lat"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad lat for %q", domain.ErrInvalid, name)
	}
	p.Location = orb.Point{lng, lat}
	return p, nil
}

func parseCategoryRow(record []string, index map[string]int) domain.Category {
	c := domain.Category{
		Key:   pick(record, index, "key"),
		Name:  localized(record, index, "name"),
		Emoji: pick(record, index, "emoji"),
		Icon:  pick(record, index, "icon"),
		Color: pick(record, index, "color"),
	}
	if c.Name.IsZero() && c.Key != "" {
		c.Name = domain.PlainText(c.Key)
	}
	return c
}

// localized reads field.de / field.en columns, falling back to a plain field
// column.
func localized(record []string, index map[string]int, field string) domain.LocalizedText {
	m := map[string]string{}
	for _, lang := range domain.Languages {
		if v := pick(record, index, field+"."+lang); v != "" {
			m[lang] = v
		}
	}
	if len(m) > 0 {
		return domain.Localized(m)
	}
	if v := pick(record, index, field); v != "" {
		return domain.PlainText(v)
	}
	return domain.LocalizedText{}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
