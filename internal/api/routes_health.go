package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/companydesk/internal/app"
	"github.com/charlesng35/companydesk/internal/handlers"
	"github.com/charlesng35/companydesk/internal/health"
)

func registerHealthRoutes(r *gin.Engine, cfg *app.Config, registry *health.Registry) {
	if !cfg.Monitoring.Health.Enabled {
		for _, router := range []gin.IRouter{r, r.Group("/api")} {
			router.GET("/health", disabledHealthHandler)
			router.GET("/health/live", disabledHealthHandler)
			router.GET("/health/ready", disabledHealthHandler)
		}
		return
	}

	handler := handlers.NewHealthHandler(registry)
	registerHealthEndpoints(r, handler)
	registerHealthEndpoints(r.Group("/api"), handler)
}

func registerHealthEndpoints(router gin.IRouter, handler *handlers.HealthHandler) {
	router.GET("/health", handler.Summary)
	router.GET("/health/live", handler.Live)
	router.GET("/health/ready", handler.Ready)
}

func disabledHealthHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"status":  "disabled",
	})
}
