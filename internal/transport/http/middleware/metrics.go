package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/metrics"
)

// Metrics records per-route latency and request counts. The route template
// (":budgetId", not the raw value) is used as the path label to keep
// cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			// unmatched route, collapse into one bucket
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start).Seconds()

		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(elapsed)
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
