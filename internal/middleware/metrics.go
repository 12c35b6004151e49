package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/limaJavier/coursetable/internal/service"
)

// unmatchedRoute labels requests no route matched so arbitrary URLs stay out of the label set.
const unmatchedRoute = "unmatched"

// scrapeRoute is not counted so the request series only reflect API traffic.
const scrapeRoute = "/metrics"

// Metrics returns middleware that captures request metrics using the provided service.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.FullPath() == scrapeRoute {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
