package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/contentfactory/panel-api/internal/service"
	"github.com/contentfactory/panel-api/pkg/response"
)

// RequireEdit blocks mutating panel routes for read-only roles. The
// capability flags come from the session's client summary, cached until
// logout.
func RequireEdit(caps *service.CapabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := caps.RequireEdit(c.Request.Context()); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
