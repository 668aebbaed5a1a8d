package middleware

import (
	"strconv" // Status code labels
	"time"    // Request latency

	"booking_system/internal/metrics" // Prometheus collectors

	"github.com/gin-gonic/gin" // Gin web framework
)

// Metrics records request count and latency per route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched" // Keep label cardinality bounded for 404s
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
