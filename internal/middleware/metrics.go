package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/service"
)

// Metrics records latency and status for every panel request. Operational
// endpoints are skipped so scrapes and probes do not pollute the histograms.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || isOperational(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

func isOperational(path string) bool {
	switch {
	case path == "/metrics", path == "/health", path == "/ready":
		return true
	case strings.HasPrefix(path, "/docs"):
		return true
	}
	return false
}
