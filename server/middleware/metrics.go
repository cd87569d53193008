package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/nativebridge/observability"
)

const unmatchedRoute = "unmatched"

// Metrics records request count, latency and in-flight requests per route
// template. Health-check paths are skipped.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		start := time.Now()
		m.RecordRequestStart(ctx)
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.RecordRequestEnd(ctx, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
