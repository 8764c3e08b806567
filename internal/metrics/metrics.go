package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the API server.
// Each instance owns its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SearchResults   prometheus.Histogram
	RecordOps       *prometheus.CounterVec
	DatasetEntries  prometheus.Gauge
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evodex_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "evodex_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
		SearchResults: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "evodex_search_results",
			Help:    "Number of slugs returned per search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		RecordOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evodex_record_operations_total",
			Help: "Remote record operations by kind (get, put) and outcome",
		}, []string{"op", "outcome"}),
		DatasetEntries: f.NewGauge(prometheus.GaugeOpts{
			Name: "evodex_dataset_entries",
			Help: "Entries loaded from the static dataset",
		}),
	}
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveSearch records how many slugs a search produced.
func (m *Metrics) ObserveSearch(results int) {
	m.SearchResults.Observe(float64(results))
}

// IncRecordOp counts a remote record operation.
func (m *Metrics) IncRecordOp(op, outcome string) {
	m.RecordOps.WithLabelValues(op, outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
