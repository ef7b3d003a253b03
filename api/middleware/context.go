package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/velog-io/velog-api/internal/utils"
)

// CustomContextMiddleware copies the acting user and client ip into the request context.
// It must run after AuthMiddleware.
func CustomContextMiddleware(appSource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := utils.WithCustomContextFromGinRequest(c, appSource)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
