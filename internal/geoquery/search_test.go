package geoquery

import (
	"testing"

	"github.com/paulmach/orb"

	"graetzlmap/internal/domain"
)

func TestSearch(t *testing.T) {
	ns := viennaNeighborhoods(t)
	ns[0].Slug = "wieden"
	d := &Dataset{POIs: viennaPOIs(), Neighborhoods: ns}
	d.POIs = append(d.POIs, domain.POI{
		ID: "desc-only", Name: "Stand 12", Category: "market",
		Description: domain.Localized(map[string]string{"de": "Bester Käse am Markt", "en": "Best cheese"}),
		Location:    orb.Point{16.36, 48.19},
	})

	res := Search(d, "markt", "de", 0)
	got := ids(res.POIs)
	want := []string{"alser-market", "wieden-market", "desc-only"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	// "Alser Markt" and "Naschmarkt Süd" only contain the term; the
	// description match ranks with them after prefix matches.
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	res = Search(d, "WIE", "de", 0)
	if len(res.Neighborhoods) != 1 || res.Neighborhoods[0].Slug != "wieden" {
		t.Fatalf("unexpected neighborhoods %+v", res.Neighborhoods)
	}
	if len(res.POIs) != 1 || res.POIs[0].ID != "wieden-cafe" {
		t.Fatalf("expected contains match on Café Wieden, got %v", ids(res.POIs))
	}

	res = Search(d, "cafe", "de", 0)
	if len(res.POIs) != 1 || res.POIs[0].ID != "wieden-cafe" {
		t.Fatalf("expected accent-insensitive match, got %v", ids(res.POIs))
	}

	res = Search(d, "  ", "de", 0)
	if len(res.POIs) != 0 || len(res.Neighborhoods) != 0 {
		t.Fatalf("expected no results for blank term")
	}

	res = Search(d, "a", "de", 1)
	if len(res.POIs) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(res.POIs))
	}
}
