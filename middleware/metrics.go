package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	documentsAnalyzed prometheus.Counter
	draftsPurged      prometheus.Counter
)

func init() {
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	documentsAnalyzed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "documents_analyzed_total",
			Help: "Total number of documents that completed analysis.",
		},
	)
	draftsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "drafts_purged_total",
			Help: "Total number of stale drafts removed by the purge job.",
		},
	)
	prometheus.MustRegister(httpRequestsTotal, httpDuration, documentsAnalyzed, draftsPurged)
}

// ObserveDocumentAnalyzed increments the completed-analysis counter.
func ObserveDocumentAnalyzed() {
	documentsAnalyzed.Inc()
}

// ObserveDraftsPurged adds the number of drafts removed in one purge run.
func ObserveDraftsPurged(count int) {
	draftsPurged.Add(float64(count))
}

// Metrics records request counts and latency per route. The route template
// (c.FullPath) is used instead of the raw URL to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
