package domain

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Neighborhood is a Grätzl boundary. Geometry is a Polygon or MultiPolygon in
// [lng, lat] order.
type Neighborhood struct {
	ID       int
	Name     LocalizedText
	Slug     string
	Active   bool
	Geometry orb.Geometry
	bound    orb.Bound
}

// NewNeighborhood builds a neighborhood and precomputes its bounding box.
func NewNeighborhood(id int, name LocalizedText, active bool, geom orb.Geometry) (Neighborhood, error) {
	switch geom.(type) {
	case orb.Polygon, orb.MultiPolygon:
	default:
		return Neighborhood{}, fmt.Errorf("%w: neighborhood %d geometry must be a Polygon, got %T", ErrInvalid, id, geom)
	}
	return Neighborhood{
		ID:       id,
		Name:     name,
		Active:   active,
		Geometry: geom,
		bound:    geom.Bound(),
	}, nil
}

// Contains reports whether the point lies inside the boundary (holes excluded).
func (n Neighborhood) Contains(p orb.Point) bool {
	if n.Geometry == nil {
		return false
	}
	if !n.bound.IsZero() && !n.bound.Contains(p) {
		return false
	}
	switch g := n.Geometry.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	default:
		return false
	}
}

// Bound returns the cached bounding box.
func (n Neighborhood) Bound() orb.Bound {
	return n.bound
}

// NeighborhoodFromFeature reads a neighborhood from a GeoJSON feature with
// properties {id, name, active}.
func NeighborhoodFromFeature(f *geojson.Feature, slugFn func(string) string) (Neighborhood, error) {
	if f == nil {
		return Neighborhood{}, fmt.Errorf("%w: nil feature", ErrInvalid)
	}
	id, ok := intProperty(f.Properties["id"])
	if !ok {
		id, ok = intProperty(f.ID)
	}
	if !ok {
		return Neighborhood{}, fmt.Errorf("%w: neighborhood without numeric id", ErrInvalid)
	}
	active := true
	if v, ok := f.Properties["active"].(bool); ok {
		active = v
	}
	n, err := NewNeighborhood(id, LocalizedFromAny(f.Properties["name"]), active, f.Geometry)
	if err != nil {
		return Neighborhood{}, err
	}
	if s := f.Properties.MustString("slug", ""); s != "" {
		n.Slug = s
	} else if slugFn != nil {
		n.Slug = slugFn(n.Name.Resolve("de", "en"))
	}
	return n, nil
}

// Feature renders the neighborhood as a GeoJSON feature.
func (n Neighborhood) Feature() *geojson.Feature {
	f := geojson.NewFeature(n.Geometry)
	f.ID = n.ID
	f.Properties["id"] = n.ID
	f.Properties["name"] = n.Name.value()
	f.Properties["active"] = n.Active
	if n.Slug != "" {
		f.Properties["slug"] = n.Slug
	}
	return f
}

func intProperty(v interface{}) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), x == float64(int(x))
	case int:
		return x, true
	case int64:
		return int(x), true
	case string:
		if n, err := strconv.Atoi(x); err == nil {
			return n, true
		}
	}
	return 0, false
}
