package geoquery

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/simplify"

	"graetzlmap/internal/domain"
)

// Leg connects two consecutive walkthrough stops. The renderer draws an arrow
// from From to To.
type Leg struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	FromLatLng LatLng  `json:"fromLatLng"`
	ToLatLng   LatLng  `json:"toLatLng"`
	DistanceKm float64 `json:"distanceKm"`
	Bearing    float64 `json:"bearing"`
}

// Stops resolves the collection's POI ids against the dataset in order and
// returns the ids that could not be resolved.
func Stops(c domain.Collection, d *Dataset) ([]domain.POI, []string) {
	idx := d.POIIndex()
	stops := make([]domain.POI, 0, len(c.POIs))
	var missing []string
	for _, id := range c.POIs {
		i, ok := idx[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		stops = append(stops, d.POIs[i])
	}
	return stops, missing
}

// WalkthroughLegs builds the legs between consecutive resolved stops. Lists
// are not directional and have no legs.
func WalkthroughLegs(c domain.Collection, d *Dataset) []Leg {
	legs := []Leg{}
	if !c.Directional() {
		return legs
	}
	stops, _ := Stops(c, d)
	for i := 1; i < len(stops); i++ {
		from, to := stops[i-1], stops[i]
		legs = append(legs, Leg{
			From:       from.ID,
			To:         to.ID,
			FromLatLng: PointToLatLng(from.Location),
			ToLatLng:   PointToLatLng(to.Location),
			DistanceKm: geo.DistanceHaversine(from.Location, to.Location) / 1000,
			Bearing:    normalizeBearing(geo.Bearing(from.Location, to.Location)),
		})
	}
	return legs
}

// PathLength sums the leg distances in kilometres.
func PathLength(legs []Leg) float64 {
	var total float64
	for _, l := range legs {
		total += l.DistanceKm
	}
	return total
}

func normalizeBearing(b float64) float64 {
	for b < 0 {
		b += 360
	}
	for b >= 360 {
		b -= 360
	}
	return b
}

// SimplifyNeighborhood reduces the boundary with Douglas-Peucker; tolerance is
// in degrees. A non-positive tolerance returns n unchanged.
func SimplifyNeighborhood(n domain.Neighborhood, tolerance float64) (domain.Neighborhood, error) {
	if tolerance <= 0 {
		return n, nil
	}
	g := simplify.DouglasPeucker(tolerance).Simplify(orb.Clone(n.Geometry))
	out, err := domain.NewNeighborhood(n.ID, n.Name, n.Active, g)
	if err != nil {
		return domain.Neighborhood{}, fmt.Errorf("simplify neighborhood %d: %w", n.ID, err)
	}
	out.Slug = n.Slug
	return out, nil
}
