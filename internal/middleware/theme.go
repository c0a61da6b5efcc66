package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/companydesk/internal/theme"
)

const (
	themeContextKey        = "theme"
	themeDefaultContextKey = "theme_default"
)

// Theme reads the preference cookie once per request and stores it, together with the
// session's configured default, in the context.
func Theme(session *theme.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session != nil {
			c.Set(themeDefaultContextKey, session.Default())
			c.Set(themeContextKey, session.Read(c.Request))
		}
		c.Next()
	}
}

// CurrentTheme returns the theme resolved by the Theme middleware. Without one it
// falls back to the session default, then to theme.Default.
func CurrentTheme(c *gin.Context) theme.Theme {
	if t, ok := contextTheme(c, themeContextKey); ok {
		return t
	}
	if t, ok := contextTheme(c, themeDefaultContextKey); ok {
		return t
	}
	return theme.Default
}

// SetCurrentTheme replaces the theme for the remainder of the request.
func SetCurrentTheme(c *gin.Context, t theme.Theme) {
	if t.Valid() {
		c.Set(themeContextKey, t)
	}
}

func contextTheme(c *gin.Context, key string) (theme.Theme, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	t, ok := v.(theme.Theme)
	return t, ok && t.Valid()
}
