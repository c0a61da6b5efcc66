package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/companydesk/internal/theme"
)

func TestThemeMiddlewareStoresCookieTheme(t *testing.T) {
	gin.SetMode(gin.TestMode)

	session, err := theme.NewSession(theme.SessionConfig{Secret: "middleware-secret"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(Theme(session))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentTheme(c).String())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "light", w.Body.String())

	cookieRec := httptest.NewRecorder()
	require.NoError(t, session.Write(cookieRec, httptest.NewRequest(http.MethodPost, "/theme", nil), theme.Dark))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookieRec.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "dark", w.Body.String())
}

func TestCurrentThemeWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.Equal(t, theme.Default, CurrentTheme(c))

	SetCurrentTheme(c, theme.Theme("purple"))
	require.Equal(t, theme.Default, CurrentTheme(c))

	SetCurrentTheme(c, theme.Dark)
	require.Equal(t, theme.Dark, CurrentTheme(c))
}

func TestCurrentThemeFallsBackToSessionDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)

	session, err := theme.NewSession(theme.SessionConfig{Secret: "middleware-secret", Default: theme.Dark})
	require.NoError(t, err)

	r := gin.New()
	r.Use(Theme(session))
	r.GET("/", func(c *gin.Context) {
		// A handler that drops the resolved theme still renders the configured default.
		c.Set(themeContextKey, theme.Theme("sepia"))
		c.String(http.StatusOK, CurrentTheme(c).String())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "dark", w.Body.String())
}
