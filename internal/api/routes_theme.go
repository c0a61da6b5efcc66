package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/companydesk/internal/handlers"
	"github.com/charlesng35/companydesk/internal/theme"
	"github.com/charlesng35/companydesk/internal/views"
)

func registerThemeRoutes(r *gin.Engine, session *theme.Session) error {
	themeHandler, err := handlers.NewThemeHandler(session)
	if err != nil {
		return err
	}

	r.GET(views.ThemeAction, themeHandler.Get)
	r.POST(views.ThemeAction, themeHandler.Set)

	icons := r.Group("/icons")
	{
		icons.GET("", handlers.IconNames)
		icons.GET("/:name", handlers.Icon)
	}
	return nil
}
