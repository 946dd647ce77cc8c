package geoquery

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/paulmach/orb"

	"graetzlmap/internal/domain"
)

func TestFilterByAttributes_EmptyFilterIsIdentity(t *testing.T) {
	pois := viennaPOIs()
	got := FilterByAttributes(pois, AttributeFilter{})
	if !reflect.DeepEqual(ids(got), ids(pois)) {
		t.Fatalf("expected identity, got %v", ids(got))
	}
}

func TestFilterByAttributes_PreservesOrder(t *testing.T) {
	got := FilterByAttributes(viennaPOIs(), AttributeFilter{Category: "market", Categories: []string{"sight"}})
	want := []string{"alser-market", "wieden-market", "stephansdom"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
}

func TestPointInPolygon(t *testing.T) {
	poly := rect(0, 0, 10, 10)
	holed := orb.Polygon{poly[0], orb.Ring{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}}}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		p := orb.Point{0.01 + rng.Float64()*9.98, 0.01 + rng.Float64()*9.98}
		if !PointInPolygon(p, poly) {
			t.Fatalf("expected %v inside", p)
		}
	}
	for _, p := range []orb.Point{{50, 50}, {-20, 5}, {5, -30}, {180, 90}} {
		if PointInPolygon(p, poly) {
			t.Fatalf("expected %v outside", p)
		}
	}
	if PointInPolygon(orb.Point{5, 5}, holed) {
		t.Fatalf("expected point in hole to be outside")
	}
	if !PointInPolygon(orb.Point{2, 2}, holed) {
		t.Fatalf("expected point outside hole to be inside")
	}
}

func TestNeighborhoodAt(t *testing.T) {
	ns := viennaNeighborhoods(t)
	n, ok := NeighborhoodAt(ns, orb.Point{16.367, 48.192})
	if !ok || n.ID != 4 {
		t.Fatalf("expected Wieden, got %+v ok=%v", n, ok)
	}
	if _, ok := NeighborhoodAt(ns, orb.Point{16.3731, 48.2085}); ok {
		t.Fatalf("expected city center to be outside both boxes")
	}
}

func TestNeighborhood_MultiPolygon(t *testing.T) {
	mp := orb.MultiPolygon{rect(0, 0, 1, 1), rect(5, 5, 6, 6)}
	n := mustNeighborhood(t, 1, "Split", mp)
	if !n.Contains(orb.Point{5.5, 5.5}) || !n.Contains(orb.Point{0.5, 0.5}) {
		t.Fatalf("expected both parts to contain their centers")
	}
	if n.Contains(orb.Point{3, 3}) {
		t.Fatalf("expected gap between parts to be outside")
	}
}

func TestFilterByNeighborhoodAndCategory_Wieden(t *testing.T) {
	id := 4
	got, err := FilterByNeighborhoodAndCategory(viennaPOIs(), viennaNeighborhoods(t), Query{NeighborhoodID: &id})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"wieden-cafe", "wieden-market"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
	for _, p := range got {
		if p.ID == "alser-market" {
			t.Fatalf("9th district poi leaked into 4th district result")
		}
	}
}

func TestFilterByNeighborhoodAndCategory_EquivalentToComposition(t *testing.T) {
	ns := viennaNeighborhoods(t)
	pois := viennaPOIs()
	for _, id := range []int{4, 9} {
		for _, cats := range [][]string{nil, {"market"}, {"cafe", "sight"}} {
			nid := id
			got, err := FilterByNeighborhoodAndCategory(pois, ns, Query{NeighborhoodID: &nid, Categories: cats})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			n, _ := FindNeighborhood(ns, id)
			composed := FilterByAttributes(FilterByNeighborhood(pois, n), AttributeFilter{Categories: cats})
			swapped := FilterByNeighborhood(FilterByAttributes(pois, AttributeFilter{Categories: cats}), n)
			if !reflect.DeepEqual(ids(got), ids(composed)) || !reflect.DeepEqual(ids(got), ids(swapped)) {
				t.Fatalf("id=%d cats=%v: got %v composed %v swapped %v", id, cats, ids(got), ids(composed), ids(swapped))
			}
		}
	}
}

func TestFilterByNeighborhoodAndCategory_NoNeighborhood(t *testing.T) {
	got, err := FilterByNeighborhoodAndCategory(viennaPOIs(), nil, Query{Categories: []string{"cafe"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []string{"wieden-cafe"}) {
		t.Fatalf("unexpected %v", ids(got))
	}
}

func TestFilterByNeighborhoodAndCategory_UnknownNeighborhood(t *testing.T) {
	id := 99
	_, err := FilterByNeighborhoodAndCategory(viennaPOIs(), viennaNeighborhoods(t), Query{NeighborhoodID: &id})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNearPoint_ViennaCenter(t *testing.T) {
	center := orb.Point{16.3738, 48.2082}
	pois := append(viennaPOIs(), domain.POI{ID: "far", Name: "Far", Category: "sight", Location: orb.Point{16.3738, 48.2532}})
	got := NearPoint(pois, center, 0.5)
	if !reflect.DeepEqual(ids(got), []string{"stephansdom"}) {
		t.Fatalf("expected only stephansdom, got %v", ids(got))
	}
}

func TestNearest_OrdersByDistance(t *testing.T) {
	center := orb.Point{16.3738, 48.2082}
	hits := Nearest(viennaPOIs(), center, 10, 2)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].POI.ID != "stephansdom" || hits[0].DistanceKm > hits[1].DistanceKm {
		t.Fatalf("unexpected order %+v", hits)
	}
}
