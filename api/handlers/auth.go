package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velog-io/velog-api/config"
	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/tracing"
	"github.com/velog-io/velog-api/internal/utils"
)

const refreshTokenCookie = "refresh_token"

// Logout clears the token cookies. It succeeds for anonymous requests too.
func Logout(authConfig *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range []string{authConfig.AccessCookieName, refreshTokenCookie} {
			c.SetCookie(name, "", -1, "/", authConfig.CookieDomain, false, true)
		}
		c.Status(http.StatusNoContent)
	}
}

// Me returns the acting user.
func Me(userService interfaces.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "Me", c.Request.Header)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, err := utils.RequireUserId(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		user, err := userService.GetByID(ctx, userId)
		if err != nil {
			tracing.TraceErr(span, err)
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
