package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graetzlmap_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graetzlmap_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	DatasetLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graetzlmap_dataset_loads_total",
		Help: "Map dataset loads by outcome",
	}, []string{"outcome"})
	DatasetFeatures = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "graetzlmap_dataset_features",
		Help: "Features in the loaded dataset",
	}, []string{"kind"})
	QueryResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graetzlmap_query_results",
		Help:    "Number of features returned per geo query",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	}, []string{"query"})
	StoreWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graetzlmap_store_writes_total",
		Help: "Writes to the data store by resource and operation",
	}, []string{"resource", "op"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(DatasetLoadsTotal)
	prometheus.MustRegister(DatasetFeatures)
	prometheus.MustRegister(QueryResults)
	prometheus.MustRegister(StoreWritesTotal)
}

// ObserveLoad records the outcome of a dataset load.
func ObserveLoad(pois, neighborhoods int, err error) {
	if err != nil {
		DatasetLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	DatasetLoadsTotal.WithLabelValues("ok").Inc()
	DatasetFeatures.WithLabelValues("poi").Set(float64(pois))
	DatasetFeatures.WithLabelValues("neighborhood").Set(float64(neighborhoods))
}

// ObserveQuery records the result size of a geo query.
func ObserveQuery(name string, n int) {
	QueryResults.WithLabelValues(name).Observe(float64(n))
}

// ObserveWrite counts a store mutation.
func ObserveWrite(resource, op string) {
	StoreWritesTotal.WithLabelValues(resource, op).Inc()
}

// Middleware records request counts and latency keyed by the matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDurationMs.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
