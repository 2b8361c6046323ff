package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veritlyapp-cell/liah-backend/pkg/metrics"
)

// Metrics records request counts and latencies per route. The route
// template (not the raw path) keys the series so path parameters do not
// explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.APIRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		metrics.APIRequestDuration.WithLabelValues(c.Request.Method, endpoint).
			Observe(time.Since(start).Seconds())
	}
}
