package bundle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"

	"graetzlmap/internal/domain"
	poirepo "graetzlmap/internal/repository/poi"
)

type stubLister struct {
	pois []domain.POI
	err  error
}

func (s stubLister) List(context.Context) ([]domain.POI, error) {
	return s.pois, s.err
}

func TestCompileRoundTripsThroughBundleReader(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public", "pois.geojson")
	src := stubLister{pois: []domain.POI{
		{ID: "b-market", Name: "Naschmarkt", Category: "market", Location: orb.Point{16.3633, 48.1986}},
		{ID: "a-cafe", Name: "Café Sperl", Category: "cafe", Description: domain.Localized(map[string]string{"de": "Klassiker", "en": "Classic"}), Location: orb.Point{16.3622, 48.1996}},
		{ID: "broken", Name: "", Category: "cafe", Location: orb.Point{16.36, 48.2}},
	}}

	res, err := New(src, nil).Compile(context.Background(), out)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res.Written != 2 || len(res.Skipped) != 1 || res.Skipped[0] != "broken" {
		t.Fatalf("unexpected result %+v", res)
	}

	pois, err := poirepo.ReadBundle(out)
	if err != nil {
		t.Fatalf("read bundle: %v", err)
	}
	if len(pois) != 2 || pois[0].ID != "a-cafe" || pois[1].ID != "b-market" {
		t.Fatalf("expected pois ordered by id, got %+v", pois)
	}
	if pois[0].Location != (orb.Point{16.3622, 48.1996}) {
		t.Fatalf("coordinates changed: %v", pois[0].Location)
	}
	if pois[0].Description.Resolve("en", "de") != "Classic" {
		t.Fatalf("description lost: %+v", pois[0].Description)
	}
}

func TestCompileKeepsOldBundleOnListError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pois.geojson")
	if err := os.WriteFile(out, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("disk gone")
	if _, err := New(stubLister{err: boom}, nil).Compile(context.Background(), out); !errors.Is(err, boom) {
		t.Fatalf("expected list error, got %v", err)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "old" {
		t.Fatalf("bundle overwritten: %q", data)
	}
}
