package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for HTTP traffic and cloud sync
// activity on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	reqTotal   *prometheus.CounterVec
	reqLatency *prometheus.HistogramVec
	syncTotal  *prometheus.CounterVec
}

// New creates a Metrics instance with a private Prometheus registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	syncTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cloud_sync_operations_total",
			Help: "Cloud sync operations by kind and outcome",
		},
		[]string{"op", "result"},
	)

	registry.MustRegister(reqTotal, reqLatency, syncTotal)

	return &Metrics{
		registry:   registry,
		reqTotal:   reqTotal,
		reqLatency: reqLatency,
		syncTotal:  syncTotal,
	}
}

// Middleware returns a gin middleware recording request counts and latency.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.reqTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.reqLatency.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSync records one sync operation. op is "fetch" or "push"; result is
// "ok", "error" or "dropped". Safe on a nil receiver so the sync client can
// run without metrics in tests.
func (m *Metrics) ObserveSync(op, result string) {
	if m == nil {
		return
	}
	m.syncTotal.WithLabelValues(op, result).Inc()
}
