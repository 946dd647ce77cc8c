package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"graetzlmap/internal/domain"
)

type collectionRequest struct {
	Title       domain.LocalizedText `json:"title"`
	Description domain.LocalizedText `json:"description"`
	Slug        string               `json:"slug" binding:"omitempty,max=120"`
	POIs        []string             `json:"pois" binding:"omitempty,dive,required"`
}

func (r collectionRequest) toDomain(kind domain.CollectionKind) domain.Collection {
	pois := r.POIs
	if pois == nil {
		pois = []string{}
	}
	return domain.Collection{Kind: kind, Title: r.Title, Description: r.Description, Slug: r.Slug, POIs: pois}
}

// collectionHandlers serves one kind under /api/lists or /api/walkthroughs.
type collectionHandlers struct {
	*handlers
	kind domain.CollectionKind
}

func (h collectionHandlers) list(c *gin.Context) {
	items, err := h.deps.Collections.List(c.Request.Context(), h.kind)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.kind.Plural(): items})
}

func (h collectionHandlers) get(c *gin.Context) {
	item, err := h.deps.Collections.Get(c.Request.Context(), h.kind, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h collectionHandlers) create(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid "+string(h.kind)+" payload")
		return
	}
	out, err := h.deps.Collections.Create(c.Request.Context(), req.toDomain(h.kind))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"id": out.ID, "slug": out.Slug, string(h.kind): out})
}

func (h collectionHandlers) update(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid "+string(h.kind)+" payload")
		return
	}
	out, err := h.deps.Collections.Update(c.Request.Context(), h.kind, c.Param("id"), req.toDomain(h.kind))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": out.ID, "slug": out.Slug, string(h.kind): out})
}

func (h collectionHandlers) remove(c *gin.Context) {
	if err := h.deps.Collections.Delete(c.Request.Context(), h.kind, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

type routeResponse struct {
	Kind       domain.CollectionKind `json:"kind"`
	Collection domain.Collection     `json:"collection"`
	Stops      interface{}           `json:"stops"`
	Missing    []string              `json:"missing"`
	Legs       interface{}           `json:"legs"`
	LengthKm   float64               `json:"lengthKm"`
}

func (h *handlers) walkthroughLegs(c *gin.Context) {
	ctx := c.Request.Context()
	w, err := h.deps.Collections.Get(ctx, domain.KindWalkthrough, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeRoute(c, *w)
}

func (h *handlers) collectionRoute(c *gin.Context) {
	col, err := h.deps.Collections.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeRoute(c, *col)
}

func (h *handlers) writeRoute(c *gin.Context, col domain.Collection) {
	route, err := h.deps.Collections.Route(c.Request.Context(), col)
	if err != nil {
		h.fail(c, err)
		return
	}
	missing := route.Missing
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, routeResponse{
		Kind:       col.Kind,
		Collection: col,
		Stops:      domain.FeatureCollection(route.Stops),
		Missing:    missing,
		Legs:       route.Legs,
		LengthKm:   route.LengthKm,
	})
}
