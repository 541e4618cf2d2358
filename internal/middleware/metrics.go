package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unidocs_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unidocs_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// DocumentViews counts recorded document views
	DocumentViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unidocs_document_views_total",
			Help: "Total number of recorded document views",
		},
	)

	// DocumentDownloads counts recorded document downloads
	DocumentDownloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unidocs_document_downloads_total",
			Help: "Total number of recorded document downloads",
		},
	)

	// RatingsSubmitted counts rating create and overwrite operations
	RatingsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unidocs_ratings_submitted_total",
			Help: "Total number of rating submissions",
		},
	)
)

// Metrics records request count and latency per route. Uses the route
// template, not the raw URL, to keep label cardinality bounded.
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
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
