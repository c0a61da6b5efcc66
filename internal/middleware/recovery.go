package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/companydesk/pkg/errors"
	"github.com/charlesng35/companydesk/pkg/logger"
	"github.com/charlesng35/companydesk/pkg/response"
)

// Recovery converts panics into a 500 response and logs the error.
// Fetch and API clients receive the JSON envelope; browsers receive plain text.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithModule("http").Error("panic",
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", r),
				)
				// Avoid leaking internals to clients
				if response.PrefersJSON(c) || c.Writer.Written() {
					response.Error(c, errors.ErrInternalServer)
					c.Abort()
					return
				}
				c.String(http.StatusInternalServerError, errors.ErrInternalServer.Message)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// NotFoundHandler returns a JSON 404 response for unknown routes.
func NotFoundHandler(c *gin.Context) {
	response.Error(c, errors.NewNotFound(fmt.Sprintf("route %s not found", c.Request.URL.Path)))
}
