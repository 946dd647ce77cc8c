package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"graetzlmap/internal/domain"
)

// poiRequest is the flat form the CMS posts. Coordinates are GeoJSON order.
type poiRequest struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Category    string               `json:"category"`
	Description domain.LocalizedText `json:"description"`
	Link        string               `json:"link"`
	Instagram   string               `json:"instagram"`
	Photo       string               `json:"photo"`
	Tags        []string             `json:"tags"`
	Coordinates []float64            `json:"coordinates"`
}

// decodePOI accepts either a GeoJSON Feature or the flat CMS form.
func decodePOI(body io.Reader) (domain.POI, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return domain.POI{}, err
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return domain.POI{}, fmt.Errorf("%w: malformed JSON body", domain.ErrInvalid)
	}
	if head.Type == "Feature" {
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return domain.POI{}, fmt.Errorf("%w: %v", domain.ErrInvalid, err)
		}
		return domain.POIFromFeature(f)
	}

	var req poiRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return domain.POI{}, fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}
	if len(req.Coordinates) != 2 {
		return domain.POI{}, fmt.Errorf("%w: coordinates must be [lng, lat]", domain.ErrInvalid)
	}
	pt := orb.Point{req.Coordinates[0], req.Coordinates[1]}
	return domain.POI{
		ID:          req.ID,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Link:        req.Link,
		Instagram:   req.Instagram,
		Photo:       req.Photo,
		Tags:        req.Tags,
		Location:    pt,
	}, nil
}

func (h *handlers) listPOIs(c *gin.Context) {
	pois, err := h.deps.POIs.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.FeatureCollection(pois))
}

func (h *handlers) getPOI(c *gin.Context) {
	p, err := h.deps.POIs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Feature())
}

func (h *handlers) createPOI(c *gin.Context) {
	p, err := decodePOI(c.Request.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.deps.POIs.Create(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"id": out.ID, "feature": out.Feature()})
}

func (h *handlers) updatePOI(c *gin.Context) {
	p, err := decodePOI(c.Request.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.deps.POIs.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": out.ID, "feature": out.Feature()})
}

func (h *handlers) deletePOI(c *gin.Context) {
	if err := h.deps.POIs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
