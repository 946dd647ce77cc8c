package geoquery

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"

	"graetzlmap/internal/domain"
)

// AttributeFilter restricts POIs by category. Category and Categories are
// merged; an empty set matches everything.
type AttributeFilter struct {
	Category   string
	Categories []string
}

func (f AttributeFilter) set() map[string]struct{} {
	set := make(map[string]struct{}, len(f.Categories)+1)
	if f.Category != "" {
		set[f.Category] = struct{}{}
	}
	for _, c := range f.Categories {
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}

// FilterByAttributes returns the POIs whose category is in the filter set,
// preserving input order. An empty filter returns pois unchanged.
func FilterByAttributes(pois []domain.POI, f AttributeFilter) []domain.POI {
	set := f.set()
	if len(set) == 0 {
		return pois
	}
	out := make([]domain.POI, 0, len(pois))
	for _, p := range pois {
		if _, ok := set[p.Category]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PointInPolygon is the planar even-odd test; points inside holes are outside.
func PointInPolygon(p orb.Point, poly orb.Polygon) bool {
	return planar.PolygonContains(poly, p)
}

// FilterByNeighborhood returns the POIs located inside n.
func FilterByNeighborhood(pois []domain.POI, n domain.Neighborhood) []domain.POI {
	out := make([]domain.POI, 0, len(pois))
	for _, p := range pois {
		if n.Contains(p.Location) {
			out = append(out, p)
		}
	}
	return out
}

// NeighborhoodAt returns the first neighborhood containing p.
func NeighborhoodAt(neighborhoods []domain.Neighborhood, p orb.Point) (domain.Neighborhood, bool) {
	for _, n := range neighborhoods {
		if n.Contains(p) {
			return n, true
		}
	}
	return domain.Neighborhood{}, false
}

// FindNeighborhood looks a neighborhood up by id.
func FindNeighborhood(neighborhoods []domain.Neighborhood, id int) (domain.Neighborhood, bool) {
	for _, n := range neighborhoods {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Neighborhood{}, false
}

// Query combines the neighborhood and category restrictions.
type Query struct {
	NeighborhoodID *int
	Categories     []string
}

// FilterByNeighborhoodAndCategory applies the polygon restriction first (when
// a neighborhood is selected) and the category restriction second.
func FilterByNeighborhoodAndCategory(pois []domain.POI, neighborhoods []domain.Neighborhood, q Query) ([]domain.POI, error) {
	result := pois
	if q.NeighborhoodID != nil {
		n, ok := FindNeighborhood(neighborhoods, *q.NeighborhoodID)
		if !ok {
			return nil, fmt.Errorf("neighborhood %d: %w", *q.NeighborhoodID, domain.ErrNotFound)
		}
		result = FilterByNeighborhood(result, n)
	}
	return FilterByAttributes(result, AttributeFilter{Categories: q.Categories}), nil
}

// NearPoint returns the POIs within radiusKm great-circle distance of center,
// preserving input order.
func NearPoint(pois []domain.POI, center orb.Point, radiusKm float64) []domain.POI {
	limit := radiusKm * 1000
	out := make([]domain.POI, 0)
	for _, p := range pois {
		if geo.DistanceHaversine(center, p.Location) <= limit {
			out = append(out, p)
		}
	}
	return out
}

// Hit is a POI with its distance from a query point.
type Hit struct {
	POI        domain.POI
	DistanceKm float64
}

// Nearest returns the POIs within radiusKm ordered by distance. limit <= 0
// means no limit.
func Nearest(pois []domain.POI, center orb.Point, radiusKm float64, limit int) []Hit {
	hits := make([]Hit, 0)
	for _, p := range pois {
		d := geo.DistanceHaversine(center, p.Location) / 1000
		if d <= radiusKm {
			hits = append(hits, Hit{POI: p, DistanceKm: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].DistanceKm < hits[j].DistanceKm })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
