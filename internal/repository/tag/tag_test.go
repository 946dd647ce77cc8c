package tag

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/testdb"
)

func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	vegan := domain.Tag{Key: "vegan", Name: domain.Localized(map[string]string{"de": "Vegan", "en": "Vegan"})}
	if _, err := repo.Create(ctx, vegan); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, vegan); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := repo.Create(ctx, domain.Tag{Key: "outdoor", Name: domain.PlainText("Schanigarten")}); err != nil {
		t.Fatalf("create outdoor: %v", err)
	}

	vegan.Name = domain.Localized(map[string]string{"de": "Rein pflanzlich", "en": "Vegan"})
	if _, err := repo.Update(ctx, vegan); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := repo.Update(ctx, domain.Tag{Key: "missing", Name: domain.PlainText("x")}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, err := repo.Get(ctx, "vegan")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name.Resolve("de", "en") != "Rein pflanzlich" {
		t.Fatalf("unexpected tag %+v", got)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "outdoor" || list[1].Key != "vegan" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestFile_CRUD(t *testing.T) {
	exerciseRepository(t, NewFile(filepath.Join(t.TempDir(), "tags.json"), nil))
}

func TestPostgres_CRUD(t *testing.T) {
	ctx := context.Background()
	exerciseRepository(t, NewPostgres(testdb.Pool(ctx, t), nil))
}
