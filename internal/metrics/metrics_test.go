package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics handler, got %d", rec.Code)
	}
	return rec.Body.String()
}

func TestMiddlewareLabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/api/pois/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/pois/naschmarkt", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	out := scrape(t)
	if !strings.Contains(out, `graetzlmap_http_requests_total{method="GET",route="/api/pois/:id",status="204"}`) {
		t.Fatalf("expected request counted under the route template")
	}
	if !strings.Contains(out, `route="unmatched",status="404"`) {
		t.Fatalf("expected unmatched request to be counted")
	}
	if strings.Contains(out, "naschmarkt") {
		t.Fatalf("raw path must not become a label")
	}
}

func TestObserveLoad(t *testing.T) {
	ObserveLoad(0, 0, errors.New("boom"))
	ObserveLoad(12, 3, nil)

	out := scrape(t)
	if !strings.Contains(out, `graetzlmap_dataset_loads_total{outcome="error"}`) {
		t.Fatalf("expected failed load counter")
	}
	if !strings.Contains(out, `graetzlmap_dataset_features{kind="poi"} 12`) {
		t.Fatalf("expected poi gauge of 12")
	}
}

func TestObserveWrite(t *testing.T) {
	ObserveWrite("tag", "update")
	if !strings.Contains(scrape(t), `graetzlmap_store_writes_total{op="update",resource="tag"}`) {
		t.Fatalf("expected store write counter")
	}
}
