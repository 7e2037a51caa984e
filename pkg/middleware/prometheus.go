package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teczamora/repositorio65/pkg/metrics"
)

// PrometheusMiddleware records request counts and durations.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		// Use the route pattern, not the raw path, to bound cardinality.
		endpoint := c.FullPath()

		c.Next()

		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.RequestCounter.WithLabelValues(method, endpoint).Inc()
		metrics.RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}
