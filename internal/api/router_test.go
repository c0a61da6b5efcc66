package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/companydesk/internal/app"
	"github.com/charlesng35/companydesk/internal/database/testutil"
	"github.com/charlesng35/companydesk/internal/health"
	"github.com/charlesng35/companydesk/internal/services"
	"github.com/charlesng35/companydesk/internal/theme"
)

func newTestRouter(t *testing.T, mutate func(*app.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithMigrations())

	cfg := &app.Config{
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	session, err := theme.NewSession(theme.SessionConfig{Secret: "router-secret"})
	require.NoError(t, err)
	companies, err := services.NewCompanyService(db)
	require.NoError(t, err)

	router, err := NewRouter(db, cfg, Dependencies{Theme: session, Companies: companies})
	require.NoError(t, err)
	return router
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouterRequiresDependencies(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	session, err := theme.NewSession(theme.SessionConfig{Secret: "router-secret"})
	require.NoError(t, err)
	companies, err := services.NewCompanyService(db)
	require.NoError(t, err)

	_, err = NewRouter(nil, &app.Config{}, Dependencies{Theme: session, Companies: companies})
	require.Error(t, err)
	_, err = NewRouter(db, nil, Dependencies{Theme: session, Companies: companies})
	require.Error(t, err)
	_, err = NewRouter(db, &app.Config{}, Dependencies{Companies: companies})
	require.Error(t, err)
	_, err = NewRouter(db, &app.Config{}, Dependencies{Theme: session})
	require.Error(t, err)
}

func TestRouter_PublicRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health").Code)
	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/health").Code)
	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/theme").Code)
	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/companies").Code)
	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/companies").Code)
	require.Equal(t, http.StatusFound, serve(router, http.MethodGet, "/").Code)
	require.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/nope").Code)

	w := serve(router, http.MethodGet, "/companies")
	require.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRouter_ReferrerPolicyKeepsSameOriginPath(t *testing.T) {
	router := newTestRouter(t, nil)

	page := serve(router, http.MethodGet, "/companies")
	// Policies under which browsers send the full same-origin URL as Referer.
	pathPreserving := []string{
		"same-origin",
		"strict-origin-when-cross-origin",
		"origin-when-cross-origin",
		"no-referrer-when-downgrade",
	}
	require.Contains(t, pathPreserving, page.Header().Get("Referrer-Policy"))

	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader("theme=dark"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "http://example.com/companies")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/companies", w.Header().Get("Location"))
}

func TestRouter_ServesEmbeddedStatic(t *testing.T) {
	router := newTestRouter(t, nil)

	w := serve(router, http.MethodGet, "/static/theme.js")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "X-Requested-With")

	w = serve(router, http.MethodGet, "/static/app.css")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, func(cfg *app.Config) {
		cfg.Monitoring.Prometheus.Endpoint = "/internal/metrics"
	})

	serve(router, http.MethodGet, "/api/companies")

	w := serve(router, http.MethodGet, "/internal/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.True(t, strings.Contains(body, "companydesk_http_latency_seconds"))
	require.True(t, strings.Contains(body, "companydesk_company_queries_total"))

	require.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/metrics").Code)
}

func TestRouter_MonitoringDisabled(t *testing.T) {
	router := newTestRouter(t, func(cfg *app.Config) {
		cfg.Monitoring.Prometheus.Enabled = false
		cfg.Monitoring.Health.Enabled = false
	})

	require.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/metrics").Code)

	w := serve(router, http.MethodGet, "/health")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "disabled")
	require.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/api/health/ready").Code)
}

func TestRouter_UsesProvidedHealthRegistry(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithMigrations())
	session, err := theme.NewSession(theme.SessionConfig{Secret: "router-secret"})
	require.NoError(t, err)
	companies, err := services.NewCompanyService(db)
	require.NoError(t, err)

	registry := health.NewRegistry()
	registry.Ready(health.Probe{Name: "company_stats", Run: func(context.Context) health.Result {
		return health.Result{Status: health.StatusDegraded, Details: "stale"}
	}})

	cfg := &app.Config{Monitoring: app.MonitoringConfig{Health: app.HealthConfig{Enabled: true}}}
	router, err := NewRouter(db, cfg, Dependencies{Theme: session, Companies: companies, Health: registry})
	require.NoError(t, err)

	w := serve(router, http.MethodGet, "/health/ready")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"degraded"`)
	require.Contains(t, w.Body.String(), "company_stats")
	require.NotContains(t, w.Body.String(), `"component":"database"`)
}

func TestRouter_CSRFToggle(t *testing.T) {
	withCSRF := newTestRouter(t, func(cfg *app.Config) { cfg.Server.CSRF.Enabled = true })
	require.Equal(t, http.StatusForbidden, serve(withCSRF, http.MethodPost, "/theme").Code)

	withoutCSRF := newTestRouter(t, nil)
	require.Equal(t, http.StatusSeeOther, serve(withoutCSRF, http.MethodPost, "/theme").Code)
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(t, func(cfg *app.Config) {
		cfg.Server.RateLimit = app.RateLimitConfig{Requests: 2, Window: time.Minute}
	})

	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/theme").Code)
	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/theme").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "/theme").Code)
	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/companies").Code)
}
