package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/companydesk/internal/handlers"
	"github.com/charlesng35/companydesk/internal/services"
)

func registerCompanyRoutes(r *gin.Engine, svc *services.CompanyService) error {
	companyHandler, err := handlers.NewCompanyHandler(svc)
	if err != nil {
		return err
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/companies")
	})
	r.GET("/companies", companyHandler.Page)

	companies := r.Group("/api/companies")
	{
		companies.GET("", companyHandler.List)
		companies.POST("", companyHandler.Create)
	}
	return nil
}
