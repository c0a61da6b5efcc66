package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/companydesk/pkg/metrics"
)

const (
	unmatchedRoute = "unmatched"
	staticRoute    = "/static"
)

// Metrics observes request latency by method, route template and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		metrics.APILatency.
			WithLabelValues(c.Request.Method, routeLabel(c), strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// routeLabel keeps the path label bounded: unknown URLs share one label and every
// embedded asset is reported under /static.
func routeLabel(c *gin.Context) string {
	route := c.FullPath()
	switch {
	case route == "":
		return unmatchedRoute
	case strings.HasPrefix(route, staticRoute+"/"):
		return staticRoute
	default:
		return route
	}
}
