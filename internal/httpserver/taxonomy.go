package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"graetzlmap/internal/domain"
)

type categoryRequest struct {
	Key   string               `json:"key" binding:"omitempty,max=64"`
	Name  domain.LocalizedText `json:"name"`
	Emoji string               `json:"emoji"`
	Icon  string               `json:"icon"`
	Color string               `json:"color" binding:"omitempty,hexcolor"`
}

func (r categoryRequest) toDomain() domain.Category {
	return domain.Category{Key: r.Key, Name: r.Name, Emoji: r.Emoji, Icon: r.Icon, Color: r.Color}
}

type tagRequest struct {
	Key  string               `json:"key" binding:"omitempty,max=64"`
	Name domain.LocalizedText `json:"name"`
}

func (h *handlers) listCategories(c *gin.Context) {
	items, err := h.deps.Categories.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	byKey := make(map[string]domain.Category, len(items))
	for _, item := range items {
		byKey[item.Key] = item
	}
	c.JSON(http.StatusOK, gin.H{"categories": byKey})
}

func (h *handlers) getCategory(c *gin.Context) {
	item, err := h.deps.Categories.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid category payload")
		return
	}
	out, err := h.deps.Categories.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"key": out.Key, "category": out})
}

func (h *handlers) updateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid category payload")
		return
	}
	out, err := h.deps.Categories.Update(c.Request.Context(), c.Param("key"), req.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"key": out.Key, "category": out})
}

func (h *handlers) listTags(c *gin.Context) {
	items, err := h.deps.Tags.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	byKey := make(map[string]domain.Tag, len(items))
	for _, item := range items {
		byKey[item.Key] = item
	}
	c.JSON(http.StatusOK, gin.H{"tags": byKey})
}

func (h *handlers) getTag(c *gin.Context) {
	item, err := h.deps.Tags.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) createTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid tag payload")
		return
	}
	out, err := h.deps.Tags.Create(c.Request.Context(), domain.Tag{Key: req.Key, Name: req.Name})
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"key": out.Key, "tag": out})
}

func (h *handlers) updateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid tag payload")
		return
	}
	out, err := h.deps.Tags.Update(c.Request.Context(), c.Param("key"), domain.Tag{Name: req.Name})
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"key": out.Key, "tag": out})
}
