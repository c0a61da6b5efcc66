package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/companydesk/internal/middleware"
	"github.com/charlesng35/companydesk/internal/theme"
	apperrors "github.com/charlesng35/companydesk/pkg/errors"
	"github.com/charlesng35/companydesk/pkg/logger"
	"github.com/charlesng35/companydesk/pkg/metrics"
	"github.com/charlesng35/companydesk/pkg/response"
)

// ThemeFormField is the form field carrying the submitted theme.
const ThemeFormField = "theme"

// ThemeHandler toggles the per-browser theme preference.
type ThemeHandler struct {
	session *theme.Session
	log     *zap.Logger
}

type themePayload struct {
	Theme theme.Theme `json:"theme"`
}

// NewThemeHandler constructs a ThemeHandler backed by the cookie session.
func NewThemeHandler(session *theme.Session) (*ThemeHandler, error) {
	if session == nil {
		return nil, errors.New("theme handler: session is required")
	}
	return &ThemeHandler{session: session, log: logger.WithModule("theme")}, nil
}

// GET /theme
func (h *ThemeHandler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, themePayload{Theme: h.session.Read(c.Request)})
}

// POST /theme
//
// Unsupported values are not an error: the stored theme is kept and echoed back.
func (h *ThemeHandler) Set(c *gin.Context) {
	current := h.session.Read(c.Request)
	submitted := c.PostForm(ThemeFormField)
	next := theme.Resolve(current, submitted)

	result := "accepted"
	if !theme.IsTheme(submitted) {
		result = "ignored"
		h.log.Debug("ignoring unsupported theme", zap.String("submitted", submitted), zap.String("theme", next.String()))
	}
	metrics.ThemeChanges.WithLabelValues(next.String(), result).Inc()

	if err := h.session.Write(c.Writer, c.Request, next); err != nil {
		h.log.Error("write theme cookie", zap.Error(err))
		if response.PrefersJSON(c) {
			response.Error(c, apperrors.ErrInternalServer)
			return
		}
		renderErrorPage(c, apperrors.ErrInternalServer)
		return
	}
	middleware.SetCurrentTheme(c, next)

	if response.PrefersJSON(c) {
		response.Success(c, http.StatusOK, themePayload{Theme: next})
		return
	}
	c.Redirect(http.StatusSeeOther, redirectTarget(c.Request))
}

// redirectTarget returns the same-origin Referer path, or "/" for anything else.
func redirectTarget(r *http.Request) string {
	referer := strings.TrimSpace(r.Referer())
	if referer == "" {
		return "/"
	}

	u, err := url.Parse(referer)
	if err != nil {
		return "/"
	}
	if u.Host != "" && !strings.EqualFold(u.Host, r.Host) {
		return "/"
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return "/"
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") || u.Path == "/theme" {
		return "/"
	}

	target := u.EscapedPath()
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target
}
