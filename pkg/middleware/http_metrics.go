package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/logger"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/metrics"
)

// HTTPMetrics records request count and latency per route template and writes
// one access log line per request.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		d := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(status), d)
		logger.Infof("%s %s %d %s rid=%s", c.Request.Method, c.Request.URL.Path, status, d.Round(time.Millisecond), c.GetString(RequestIDKey))
	}
}
