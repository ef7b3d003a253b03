package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/velog-io/velog-api/internal/auth"
	"github.com/velog-io/velog-api/internal/utils"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves the acting user from a Bearer token or the access token cookie.
// Requests without a valid token continue anonymously.
func AuthMiddleware(tokens *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		userId := ""
		if token != "" {
			if claims, err := tokens.Validate(token); err == nil {
				userId = claims.UserID
			}
		}

		c.Set(utils.GinKeyUserId, userId)
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}

	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil {
			return cookie
		}
	}
	return ""
}
