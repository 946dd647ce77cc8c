package geoquery

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ErrBadCoordinate is returned for coordinates that are not exactly two finite numbers.
var ErrBadCoordinate = errors.New("coordinate must have exactly 2 numeric elements")

// LatLng is the [lat, lng] order used by the map renderer.
type LatLng [2]float64

// ToLatLng converts a GeoJSON [lng, lat] pair to [lat, lng].
func ToLatLng(c []float64) (LatLng, error) {
	if err := checkPair(c); err != nil {
		return LatLng{}, err
	}
	return LatLng{c[1], c[0]}, nil
}

// ToLngLat converts a renderer [lat, lng] pair back to GeoJSON [lng, lat].
func ToLngLat(c []float64) (orb.Point, error) {
	if err := checkPair(c); err != nil {
		return orb.Point{}, err
	}
	return orb.Point{c[1], c[0]}, nil
}

// PointToLatLng swaps an orb point into renderer order.
func PointToLatLng(p orb.Point) LatLng {
	return LatLng{p[1], p[0]}
}

// RingToLatLng converts every position of a GeoJSON ring.
func RingToLatLng(ring [][]float64) ([]LatLng, error) {
	out := make([]LatLng, 0, len(ring))
	for i, c := range ring {
		ll, err := ToLatLng(c)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		out = append(out, ll)
	}
	return out, nil
}

// RingToLngLat converts a renderer ring back to GeoJSON order.
func RingToLngLat(ring [][]float64) (orb.Ring, error) {
	out := make(orb.Ring, 0, len(ring))
	for i, c := range ring {
		p, err := ToLngLat(c)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// PolygonToLatLng converts all rings of a polygon into renderer order.
func PolygonToLatLng(poly orb.Polygon) [][]LatLng {
	out := make([][]LatLng, 0, len(poly))
	for _, ring := range poly {
		r := make([]LatLng, 0, len(ring))
		for _, p := range ring {
			r = append(r, PointToLatLng(p))
		}
		out = append(out, r)
	}
	return out
}

// GeometryToLatLng converts a Polygon or MultiPolygon into a list of polygons
// in renderer order.
func GeometryToLatLng(g orb.Geometry) ([][][]LatLng, error) {
	switch v := g.(type) {
	case orb.Polygon:
		return [][][]LatLng{PolygonToLatLng(v)}, nil
	case orb.MultiPolygon:
		out := make([][][]LatLng, 0, len(v))
		for _, poly := range v {
			out = append(out, PolygonToLatLng(poly))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported geometry %T", g)
	}
}

func checkPair(c []float64) error {
	if len(c) != 2 {
		return fmt.Errorf("%w: got %d", ErrBadCoordinate, len(c))
	}
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrBadCoordinate
		}
	}
	return nil
}
