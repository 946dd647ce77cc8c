package geoquery

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"

	"graetzlmap/internal/domain"
)

func rect(minLng, minLat, maxLng, maxLat float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minLng, minLat}, {maxLng, minLat}, {maxLng, maxLat}, {minLng, maxLat}, {minLng, minLat},
	}}
}

func mustNeighborhood(t *testing.T, id int, name string, geom orb.Geometry) domain.Neighborhood {
	t.Helper()
	n, err := domain.NewNeighborhood(id, domain.PlainText(name), true, geom)
	if err != nil {
		t.Fatalf("neighborhood %d: %v", id, err)
	}
	return n
}

// wieden and alsergrund are coarse boxes around Vienna's 4th and 9th districts.
func viennaNeighborhoods(t *testing.T) []domain.Neighborhood {
	return []domain.Neighborhood{
		mustNeighborhood(t, 4, "Wieden", rect(16.355, 48.185, 16.380, 48.200)),
		mustNeighborhood(t, 9, "Alsergrund", rect(16.340, 48.215, 16.370, 48.235)),
	}
}

func viennaPOIs() []domain.POI {
	return []domain.POI{
		{ID: "wieden-cafe", Name: "Café Wieden", Category: "cafe", Location: orb.Point{16.367, 48.192}},
		{ID: "alser-market", Name: "Alser Markt", Category: "market", Location: orb.Point{16.355, 48.225}},
		{ID: "wieden-market", Name: "Naschmarkt Süd", Category: "market", Location: orb.Point{16.362, 48.196}},
		{ID: "stephansdom", Name: "Stephansdom", Category: "sight", Location: orb.Point{16.3731, 48.2085}},
	}
}

type stubSource struct {
	pois          []domain.POI
	neighborhoods []domain.Neighborhood
	err           error
	calls         int
}

func (s *stubSource) LoadPOIs(_ context.Context) ([]domain.POI, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.pois, nil
}

func (s *stubSource) LoadNeighborhoods(_ context.Context) ([]domain.Neighborhood, error) {
	return s.neighborhoods, nil
}

var errBoom = errors.New("boom")

func ids(pois []domain.POI) []string {
	out := make([]string, 0, len(pois))
	for _, p := range pois {
		out = append(out, p.ID)
	}
	return out
}
