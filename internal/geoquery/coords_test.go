package geoquery

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestCoordinateRoundTrip(t *testing.T) {
	pairs := [][]float64{
		{16.3738, 48.2082},
		{-122.392375, 37.791614},
		{0, 0},
		{180, -90},
		{16.123456789012345, 48.987654321098765},
	}
	for _, p := range pairs {
		ll, err := ToLatLng(p)
		if err != nil {
			t.Fatalf("ToLatLng(%v): %v", p, err)
		}
		if ll[0] != p[1] || ll[1] != p[0] {
			t.Fatalf("expected swap of %v, got %v", p, ll)
		}
		back, err := ToLngLat(ll[:])
		if err != nil {
			t.Fatalf("ToLngLat(%v): %v", ll, err)
		}
		if back[0] != p[0] || back[1] != p[1] {
			t.Fatalf("round trip changed %v into %v", p, back)
		}
	}
}

func TestCoordinateConversion_FailsFast(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
	}{
		{"empty", nil},
		{"one element", []float64{16.3}},
		{"three elements", []float64{16.3, 48.2, 120}},
		{"nan", []float64{math.NaN(), 48.2}},
		{"inf", []float64{16.3, math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToLatLng(tt.in); !errors.Is(err, ErrBadCoordinate) {
				t.Fatalf("ToLatLng: expected ErrBadCoordinate, got %v", err)
			}
			if _, err := ToLngLat(tt.in); !errors.Is(err, ErrBadCoordinate) {
				t.Fatalf("ToLngLat: expected ErrBadCoordinate, got %v", err)
			}
		})
	}
}

func TestRingConversion(t *testing.T) {
	ring := [][]float64{{16.35, 48.18}, {16.38, 48.18}, {16.38, 48.20}, {16.35, 48.18}}
	ll, err := RingToLatLng(ring)
	if err != nil {
		t.Fatalf("RingToLatLng: %v", err)
	}
	raw := make([][]float64, 0, len(ll))
	for _, c := range ll {
		raw = append(raw, []float64{c[0], c[1]})
	}
	back, err := RingToLngLat(raw)
	if err != nil {
		t.Fatalf("RingToLngLat: %v", err)
	}
	for i := range ring {
		if back[i] != (orb.Point{ring[i][0], ring[i][1]}) {
			t.Fatalf("position %d changed: %v", i, back[i])
		}
	}

	if _, err := RingToLatLng([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrBadCoordinate) {
		t.Fatalf("expected ErrBadCoordinate for ragged ring, got %v", err)
	}
}

func TestGeometryToLatLng(t *testing.T) {
	polys, err := GeometryToLatLng(orb.MultiPolygon{rect(0, 1, 2, 3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(polys) != 1 || polys[0][0][0] != (LatLng{1, 0}) {
		t.Fatalf("unexpected conversion %v", polys)
	}
	if _, err := GeometryToLatLng(orb.Point{1, 2}); err == nil {
		t.Fatalf("expected error for point geometry")
	}
}
