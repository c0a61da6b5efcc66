package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/companydesk/internal/icons"
	apperrors "github.com/charlesng35/companydesk/pkg/errors"
	"github.com/charlesng35/companydesk/pkg/response"
)

const iconCacheControl = "public, max-age=86400"

// Icon serves a single SVG icon by name. The optional class query parameter is escaped into the markup.
// GET /icons/:name
func Icon(c *gin.Context) {
	name := c.Param("name")
	svg, err := icons.Render(name, c.Query("class"))
	if err != nil {
		var unknown icons.ErrUnknownIcon
		if errors.As(err, &unknown) {
			response.Error(c, apperrors.NewNotFound(unknown.Error()))
			return
		}
		response.Error(c, apperrors.ErrInternalServer.WithInternal(err))
		return
	}

	c.Header("Cache-Control", iconCacheControl)
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(svg))
}

// IconNames lists the available icons.
// GET /icons
func IconNames(c *gin.Context) {
	response.Success(c, http.StatusOK, icons.Names())
}
