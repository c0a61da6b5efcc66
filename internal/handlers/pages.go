package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/companydesk/internal/middleware"
	"github.com/charlesng35/companydesk/internal/views"
	"github.com/charlesng35/companydesk/pkg/errors"
)

const errorTemplate = "error.tmpl"

type errorPageData struct {
	Message string
}

// renderPage renders a layout-based template with the request's theme and CSRF token.
func renderPage(c *gin.Context, status int, name, title string, data any) {
	c.HTML(status, name, views.Page{
		Title:     title,
		Theme:     middleware.CurrentTheme(c),
		CSRFToken: middleware.CSRFToken(c),
		Data:      data,
	})
}

// renderErrorPage shows the client-facing message of err without internal details.
func renderErrorPage(c *gin.Context, err error) {
	appErr := errors.FromError(err)
	renderPage(c, appErr.Status(), errorTemplate, "Something went wrong", errorPageData{Message: appErr.Message})
}
