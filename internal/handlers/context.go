package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// companyQueryTimeout bounds a single company list or insert.
const companyQueryTimeout = 5 * time.Second

func requestContext(c *gin.Context) context.Context {
	if c == nil || c.Request == nil {
		return context.Background()
	}
	return c.Request.Context()
}

// queryContext derives the context for a company query from the request, capped at
// companyQueryTimeout so a stalled database cannot hold the handler indefinitely.
func queryContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(requestContext(c), companyQueryTimeout)
}
