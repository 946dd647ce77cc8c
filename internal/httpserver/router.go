package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/geoquery"
	"graetzlmap/internal/metrics"
	collectionsvc "graetzlmap/internal/service/collection"
)

// Mode selects which surfaces are served.
type Mode string

const (
	// ModeServer serves the live API, the CMS and uploads.
	ModeServer Mode = "server"
	// ModeStatic serves the compiled site with read-only queries only.
	ModeStatic Mode = "static"
)

type poiService interface {
	List(ctx context.Context) ([]domain.POI, error)
	Get(ctx context.Context, id string) (*domain.POI, error)
	Create(ctx context.Context, p domain.POI) (*domain.POI, error)
	Update(ctx context.Context, id string, p domain.POI) (*domain.POI, error)
	Delete(ctx context.Context, id string) error
}

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, key string) (*domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, key string, c domain.Category) (*domain.Category, error)
}

type tagService interface {
	List(ctx context.Context) ([]domain.Tag, error)
	Get(ctx context.Context, key string) (*domain.Tag, error)
	Create(ctx context.Context, t domain.Tag) (*domain.Tag, error)
	Update(ctx context.Context, key string, t domain.Tag) (*domain.Tag, error)
}

type collectionService interface {
	List(ctx context.Context, kind domain.CollectionKind) ([]domain.Collection, error)
	Get(ctx context.Context, kind domain.CollectionKind, id string) (*domain.Collection, error)
	Create(ctx context.Context, c domain.Collection) (*domain.Collection, error)
	Update(ctx context.Context, kind domain.CollectionKind, id string, c domain.Collection) (*domain.Collection, error)
	Delete(ctx context.Context, kind domain.CollectionKind, id string) error
	BySlug(ctx context.Context, slug string) (*domain.Collection, error)
	Route(ctx context.Context, c domain.Collection) (*collectionsvc.Route, error)
}

type uploadService interface {
	Save(ctx context.Context, clientName string, r io.Reader) (string, error)
}

type datasetCache interface {
	Load(ctx context.Context) (*geoquery.Dataset, error)
	LoadOrEmpty(ctx context.Context) *geoquery.Dataset
	Invalidate()
}

// Deps carries everything the router needs. Write services may be nil in
// static mode.
type Deps struct {
	Mode           Mode
	POIs           poiService
	Categories     categoryService
	Tags           tagService
	Collections    collectionService
	Uploads        uploadService
	Cache          datasetCache
	ReadyChecks    []ReadyCheck
	PublicDir      string
	UploadDir      string
	CMSDir         string
	CORSOrigins    []string
	DefaultLang    string
	MaxUploadBytes int64
}

func (d Deps) validate() error {
	if d.Mode != ModeServer && d.Mode != ModeStatic {
		return fmt.Errorf("httpserver: unknown mode %q", d.Mode)
	}
	if d.Cache == nil {
		return errors.New("httpserver: dataset cache required")
	}
	if d.Collections == nil {
		return errors.New("httpserver: collection service required")
	}
	if d.Mode == ModeServer && (d.POIs == nil || d.Categories == nil || d.Tags == nil || d.Uploads == nil) {
		return errors.New("httpserver: server mode needs poi, category, tag and upload services")
	}
	return nil
}

// buildRouter wires routes for the API and the site.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.Mode == "" {
		deps.Mode = ModeServer
	}
	if deps.DefaultLang == "" {
		deps.DefaultLang = domain.Languages[0]
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(traceIDMiddleware(), metrics.Middleware(), corsMiddleware(deps.CORSOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(logger, deps.ReadyChecks))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h := &handlers{logger: logger, deps: deps}
	api := router.Group("/api")

	api.GET("/query/pois", h.queryPOIs)
	api.GET("/query/near", h.queryNear)
	api.GET("/query/neighborhood", h.queryNeighborhoodAt)
	api.GET("/query/search", h.querySearch)
	api.GET("/neighborhoods", h.listNeighborhoods)
	api.GET("/walkthroughs/:id/legs", h.walkthroughLegs)
	api.GET("/routes/g/:slug", h.neighborhoodRoute)
	api.GET("/routes/l/:slug", h.collectionRoute)
	api.POST("/reload", h.reload)

	if deps.Mode == ModeServer {
		api.GET("/pois", h.listPOIs)
		api.POST("/pois", h.createPOI)
		api.GET("/pois/:id", h.getPOI)
		api.PUT("/pois/:id", h.updatePOI)
		api.DELETE("/pois/:id", h.deletePOI)

		for _, kind := range []domain.CollectionKind{domain.KindList, domain.KindWalkthrough} {
			ch := collectionHandlers{handlers: h, kind: kind}
			g := api.Group("/" + kind.Plural())
			g.GET("", ch.list)
			g.POST("", ch.create)
			g.GET("/:id", ch.get)
			g.PUT("/:id", ch.update)
			g.DELETE("/:id", ch.remove)
		}

		api.GET("/categories", h.listCategories)
		api.POST("/categories", h.createCategory)
		api.GET("/categories/:key", h.getCategory)
		api.PUT("/categories/:key", h.updateCategory)

		api.GET("/tags", h.listTags)
		api.POST("/tags", h.createTag)
		api.GET("/tags/:key", h.getTag)
		api.PUT("/tags/:key", h.updateTag)

		api.POST("/upload", h.upload)

		if deps.CMSDir != "" {
			router.Static("/cms", deps.CMSDir)
		}
	}

	if deps.UploadDir != "" {
		router.Static("/uploads", deps.UploadDir)
	}
	router.NoRoute(h.site)

	return router, nil
}

type handlers struct {
	logger *log.Logger
	deps   Deps
}

func (h *handlers) fail(c *gin.Context, err error) {
	writeError(c, h.logger, err)
}

func (h *handlers) lang(c *gin.Context) string {
	if l := c.Query("lang"); l != "" {
		return l
	}
	return h.deps.DefaultLang
}

func ok(c *gin.Context, status int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(status, body)
}

func (h *handlers) reload(c *gin.Context) {
	h.deps.Cache.Invalidate()
	d, err := h.deps.Cache.Load(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"pois": len(d.POIs), "neighborhoods": len(d.Neighborhoods)})
}
