package poi

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/testdb"
)

func samplePOI(id string) domain.POI {
	return domain.POI{
		ID:          id,
		Name:        "Café Sperl",
		Category:    "cafe",
		Description: domain.Localized(map[string]string{"de": "Klassisches Kaffeehaus", "en": "Classic coffee house"}),
		Tags:        []string{"traditional"},
		Location:    orb.Point{16.3634, 48.1986},
	}
}

func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	if _, err := repo.Create(ctx, samplePOI("poi-1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, samplePOI("poi-1")); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := repo.Create(ctx, samplePOI("poi-2")); err != nil {
		t.Fatalf("create second: %v", err)
	}

	got, err := repo.GetByID(ctx, "poi-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Café Sperl" || got.Description.Resolve("en", "de") != "Classic coffee house" || got.Location != (orb.Point{16.3634, 48.1986}) {
		t.Fatalf("unexpected poi %+v", got)
	}

	updated := samplePOI("poi-1")
	updated.Name = "Café Sperl am Ring"
	if _, err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := repo.Update(ctx, samplePOI("nope")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "poi-1" || list[0].Name != "Café Sperl am Ring" {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := repo.Delete(ctx, "poi-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "poi-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "poi-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFile_CRUD(t *testing.T) {
	exerciseRepository(t, NewFile(filepath.Join(t.TempDir(), "pois"), nil))
}

func TestFile_RejectsPathLikeIDs(t *testing.T) {
	repo := NewFile(t.TempDir(), nil)
	if _, err := repo.GetByID(context.Background(), "../secrets"); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestFile_ListSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewFile(dir, nil)
	if _, err := repo.Create(context.Background(), samplePOI("poi-ok")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "poi-ok" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestBundle_ReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pois.geojson")
	data, err := domain.FeatureCollection([]domain.POI{samplePOI("a"), samplePOI("b")}).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	repo := NewBundle(path, nil)
	ctx := context.Background()
	list, err := repo.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v %+v", err, list)
	}
	if p, err := repo.GetByID(ctx, "b"); err != nil || p.ID != "b" {
		t.Fatalf("get: %v %+v", err, p)
	}
	if _, err := repo.GetByID(ctx, "c"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Create(ctx, samplePOI("c")); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	if err := repo.Delete(ctx, "a"); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestBundle_MissingFile(t *testing.T) {
	repo := NewBundle(filepath.Join(t.TempDir(), "missing.geojson"), nil)
	if _, err := repo.List(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestPostgres_CRUD(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(ctx, t)
	exerciseRepository(t, NewPostgres(pool, nil))
}
