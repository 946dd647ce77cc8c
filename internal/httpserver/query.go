package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/geoquery"
	"graetzlmap/internal/metrics"
)

const (
	defaultRadiusKm = 0.5
	maxRadiusKm     = 50
	defaultLimit    = 10
)

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func floatQuery(c *gin.Context, key string, def float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalid, key)
	}
	return v, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalid, key)
	}
	return v, nil
}

// pointQuery reads a required lng/lat pair.
func pointQuery(c *gin.Context) (orb.Point, error) {
	if c.Query("lng") == "" || c.Query("lat") == "" {
		return orb.Point{}, fmt.Errorf("%w: lng and lat required", domain.ErrInvalid)
	}
	lng, err := floatQuery(c, "lng", 0)
	if err != nil {
		return orb.Point{}, err
	}
	lat, err := floatQuery(c, "lat", 0)
	if err != nil {
		return orb.Point{}, err
	}
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return orb.Point{}, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalid)
	}
	return orb.Point{lng, lat}, nil
}

// queryPOIs filters by neighborhood (polygon) and then by category.
func (h *handlers) queryPOIs(c *gin.Context) {
	var q geoquery.Query
	if raw := c.Query("neighborhood"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "neighborhood must be an integer id")
			return
		}
		q.NeighborhoodID = &id
	}
	q.Categories = append(splitList(c.Query("category")), splitList(c.Query("categories"))...)

	d := h.deps.Cache.LoadOrEmpty(c.Request.Context())
	pois, err := geoquery.FilterByNeighborhoodAndCategory(d.POIs, d.Neighborhoods, q)
	if err != nil {
		h.fail(c, err)
		return
	}
	metrics.ObserveQuery("pois", len(pois))
	c.JSON(http.StatusOK, domain.FeatureCollection(pois))
}

func (h *handlers) queryNear(c *gin.Context) {
	center, err := pointQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	radius, err := floatQuery(c, "radius", defaultRadiusKm)
	if err != nil {
		h.fail(c, err)
		return
	}
	if radius <= 0 || radius > maxRadiusKm {
		badRequest(c, fmt.Sprintf("radius must be in (0, %d] km", maxRadiusKm))
		return
	}
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		h.fail(c, err)
		return
	}

	d := h.deps.Cache.LoadOrEmpty(c.Request.Context())
	hits := geoquery.Nearest(d.POIs, center, radius, limit)
	fc := geojson.NewFeatureCollection()
	for _, hit := range hits {
		f := hit.POI.Feature()
		f.Properties["distanceKm"] = hit.DistanceKm
		fc.Append(f)
	}
	metrics.ObserveQuery("near", len(hits))
	c.JSON(http.StatusOK, fc)
}

type neighborhoodSummary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Active bool   `json:"active"`
}

func summarize(n domain.Neighborhood, lang string) neighborhoodSummary {
	return neighborhoodSummary{ID: n.ID, Name: n.Name.Resolve(lang, domain.Languages[0]), Slug: n.Slug, Active: n.Active}
}

func (h *handlers) queryNeighborhoodAt(c *gin.Context) {
	p, err := pointQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	d := h.deps.Cache.LoadOrEmpty(c.Request.Context())
	n, found := geoquery.NeighborhoodAt(d.Neighborhoods, p)
	if !found {
		h.fail(c, fmt.Errorf("no neighborhood at %g,%g: %w", p.Lon(), p.Lat(), domain.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, summarize(n, h.lang(c)))
}

type poiMatch struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (h *handlers) querySearch(c *gin.Context) {
	limit, err := intQuery(c, "limit", defaultLimit)
	if err != nil {
		h.fail(c, err)
		return
	}
	d := h.deps.Cache.LoadOrEmpty(c.Request.Context())
	res := geoquery.Search(d, c.Query("q"), h.lang(c), limit)
	pois := make([]poiMatch, 0, len(res.POIs))
	for _, p := range res.POIs {
		pois = append(pois, poiMatch{ID: p.ID, Name: p.Name, Category: p.Category})
	}
	metrics.ObserveQuery("search", len(res.Neighborhoods)+len(pois))
	c.JSON(http.StatusOK, gin.H{"neighborhoods": res.Neighborhoods, "pois": pois})
}

type neighborhoodShape struct {
	neighborhoodSummary
	Polygons [][][]geoquery.LatLng `json:"polygons"`
}

// listNeighborhoods returns the boundaries as GeoJSON, or with format=latlng
// as renderer-ordered polygons. simplify is a Douglas-Peucker tolerance in
// degrees.
func (h *handlers) listNeighborhoods(c *gin.Context) {
	tolerance, err := floatQuery(c, "simplify", 0)
	if err != nil {
		h.fail(c, err)
		return
	}
	if tolerance < 0 {
		badRequest(c, "simplify must not be negative")
		return
	}
	d := h.deps.Cache.LoadOrEmpty(c.Request.Context())
	lang := h.lang(c)

	neighborhoods := make([]domain.Neighborhood, 0, len(d.Neighborhoods))
	for _, n := range d.Neighborhoods {
		s, err := geoquery.SimplifyNeighborhood(n, tolerance)
		if err != nil {
			h.fail(c, err)
			return
		}
		neighborhoods = append(neighborhoods, s)
	}

	if c.Query("format") == "latlng" {
		out := make([]neighborhoodShape, 0, len(neighborhoods))
		for _, n := range neighborhoods {
			polys, err := geoquery.GeometryToLatLng(n.Geometry)
			if err != nil {
				h.fail(c, err)
				return
			}
			out = append(out, neighborhoodShape{neighborhoodSummary: summarize(n, lang), Polygons: polys})
		}
		c.JSON(http.StatusOK, gin.H{"neighborhoods": out})
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, n := range neighborhoods {
		fc.Append(n.Feature())
	}
	c.JSON(http.StatusOK, fc)
}

// neighborhoodRoute backs the /g/:slug share links.
func (h *handlers) neighborhoodRoute(c *gin.Context) {
	d := h.deps.Cache.LoadOrEmpty(c.Request.Context())
	name := c.Param("slug")
	for _, n := range d.Neighborhoods {
		if n.Slug != name {
			continue
		}
		pois := geoquery.FilterByAttributes(geoquery.FilterByNeighborhood(d.POIs, n), geoquery.AttributeFilter{Categories: splitList(c.Query("category"))})
		metrics.ObserveQuery("neighborhood", len(pois))
		c.JSON(http.StatusOK, gin.H{
			"neighborhood": summarize(n, h.lang(c)),
			"pois":         domain.FeatureCollection(pois),
		})
		return
	}
	h.fail(c, fmt.Errorf("neighborhood %q: %w", name, domain.ErrNotFound))
}
