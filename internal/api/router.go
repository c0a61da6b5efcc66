package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/companydesk/internal/app"
	"github.com/charlesng35/companydesk/internal/health"
	"github.com/charlesng35/companydesk/internal/middleware"
	"github.com/charlesng35/companydesk/internal/services"
	"github.com/charlesng35/companydesk/internal/theme"
	"github.com/charlesng35/companydesk/internal/views"
	"github.com/charlesng35/companydesk/web"
)

// Dependencies carries the services the router wires into handlers.
type Dependencies struct {
	Theme     *theme.Session
	Companies *services.CompanyService
	// RateStore backs the rate limiter. Nil selects a process-local store.
	RateStore middleware.RateStore
	// Health holds the probes behind the health endpoints. Nil registers a database probe only.
	Health *health.Registry
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, cfg *app.Config, deps Dependencies) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if deps.Theme == nil {
		return nil, fmt.Errorf("theme session must be provided")
	}
	if deps.Companies == nil {
		return nil, fmt.Errorf("company service must be provided")
	}

	templates, err := web.Templates(views.FuncMap())
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := web.Static()
	if err != nil {
		return nil, fmt.Errorf("load static assets: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(templates)

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Theme(deps.Theme))
	if cfg.Server.CSRF.Enabled {
		r.Use(middleware.CSRF())
	}

	rates := deps.RateStore
	if rates == nil {
		rates = middleware.NewMemoryRateStore()
	}
	r.Use(middleware.RateLimitWithStore(rates, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window))

	r.StaticFS("/static", http.FS(static))

	probes := deps.Health
	if probes == nil {
		probes = health.NewRegistry()
		probes.Ready(health.Database(db, 0))
	}
	registerHealthRoutes(r, cfg, probes)
	registerMonitoringRoutes(r, cfg)

	if err := registerThemeRoutes(r, deps.Theme); err != nil {
		return nil, err
	}
	if err := registerCompanyRoutes(r, deps.Companies); err != nil {
		return nil, err
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
