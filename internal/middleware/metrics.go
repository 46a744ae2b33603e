package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/timetable-api/internal/service"
)

// Metrics records request counts and latency per route template. The scrape
// endpoint itself is not measured, and unmatched paths collapse into one
// label to bound series cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
