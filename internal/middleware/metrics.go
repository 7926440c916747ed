package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evalua-app/evalua-api/internal/service"
)

// observability endpoints are scraped constantly and would dominate every
// histogram, so they are not observed themselves.
var unobservedPaths = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
	"/ready":   {},
}

// Metrics observes each request's method, route and duration. The route
// label uses the gin template ("/api/v1/teachers/:id") so one noisy
// teacher id cannot explode the label cardinality; unmatched requests fall
// back to the raw path.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		if _, skip := unobservedPaths[c.Request.URL.Path]; skip {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
