package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/companydesk/internal/api"
	"github.com/charlesng35/companydesk/internal/app"
	sharedtestutil "github.com/charlesng35/companydesk/internal/database/testutil"
	"github.com/charlesng35/companydesk/internal/middleware"
	"github.com/charlesng35/companydesk/internal/services"
	"github.com/charlesng35/companydesk/internal/theme"
	"github.com/charlesng35/companydesk/pkg/response"
)

// Env encapsulates a fully-wired router backed by an in-memory database for handler tests.
// It behaves like a single browser: cookies set by responses are replayed on later requests.
type Env struct {
	T         *testing.T
	DB        *gorm.DB
	Router    *gin.Engine
	Config    *app.Config
	Companies *services.CompanyService
	Session   *theme.Session

	cookies map[string]*http.Cookie
}

// EnvOption customises the configuration used by NewEnv.
type EnvOption func(*app.Config)

// WithoutCSRF disables CSRF protection.
func WithoutCSRF() EnvOption {
	return func(cfg *app.Config) {
		cfg.Server.CSRF.Enabled = false
	}
}

// WithPageSize sets companies.page_size.
func WithPageSize(size int) EnvOption {
	return func(cfg *app.Config) {
		cfg.Companies.PageSize = size
	}
}

// NewEnv provisions a fresh handler test environment with migrations applied.
func NewEnv(t *testing.T, opts ...EnvOption) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithMigrations())

	cfg := &app.Config{
		Server: app.ServerConfig{
			CSRF: app.CSRFConfig{Enabled: true},
		},
		Theme: app.ThemeConfig{
			Default: "light",
			Cookie:  app.ThemeCookieConfig{Secret: "handler-test-secret"},
		},
		Companies: app.CompaniesConfig{PageSize: services.MaxCompanyPageSize},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	session, err := theme.NewSession(cfg.Theme.SessionConfig())
	require.NoError(t, err)

	companies, err := services.NewCompanyService(db, services.WithPageSize(cfg.Companies.PageSize))
	require.NoError(t, err)

	router, err := api.NewRouter(db, cfg, api.Dependencies{
		Theme:     session,
		Companies: companies,
		RateStore: middleware.NewMemoryRateStore(),
	})
	require.NoError(t, err)

	return &Env{
		T:         t,
		DB:        db,
		Router:    router,
		Config:    cfg,
		Companies: companies,
		Session:   session,
		cookies:   make(map[string]*http.Cookie),
	}
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
	Meta    *response.Meta      `json:"meta"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes a JSON request against the test router. A nil body sends no payload.
func (e *Env) Request(method, path string, body any) *httptest.ResponseRecorder {
	e.T.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.T, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	e.attachCSRF(req, method)
	return e.Do(req)
}

// PostForm submits an urlencoded form like a browser would, including the CSRF form field.
// Extra headers (for example X-Requested-With or Referer) are applied as given.
func (e *Env) PostForm(path string, values url.Values, headers map[string]string) *httptest.ResponseRecorder {
	e.T.Helper()

	if values == nil {
		values = url.Values{}
	}
	if e.Config.Server.CSRF.Enabled {
		values.Set(middleware.CSRFFormField, e.CSRFToken())
	}

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return e.Do(req)
}

// Get issues a plain browser GET.
func (e *Env) Get(path string) *httptest.ResponseRecorder {
	e.T.Helper()
	return e.Do(httptest.NewRequest(http.MethodGet, path, nil))
}

// Do sends req with the stored cookies and records any cookies the response sets.
func (e *Env) Do(req *http.Request) *httptest.ResponseRecorder {
	e.T.Helper()

	for _, cookie := range e.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(e.cookies, cookie.Name)
			continue
		}
		e.cookies[cookie.Name] = cookie
	}
	return w
}

// Cookie returns the stored cookie with the given name, if any.
func (e *Env) Cookie(name string) *http.Cookie {
	return e.cookies[name]
}

// SetCookie stores a cookie to send with subsequent requests.
func (e *Env) SetCookie(cookie *http.Cookie) {
	e.cookies[cookie.Name] = cookie
}

// CSRFToken returns the double-submit token, fetching one when none is stored yet.
func (e *Env) CSRFToken() string {
	e.T.Helper()

	if cookie, ok := e.cookies[middleware.CSRFCookieName]; ok {
		return cookie.Value
	}
	e.Get("/health")
	cookie, ok := e.cookies[middleware.CSRFCookieName]
	require.True(e.T, ok, "csrf cookie not issued")
	return cookie.Value
}

func (e *Env) attachCSRF(req *http.Request, method string) {
	if !e.Config.Server.CSRF.Enabled {
		return
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		req.Header.Set(middleware.CSRFHeaderName, e.CSRFToken())
	}
}
