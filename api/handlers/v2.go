package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velog-io/velog-api/internal/utils"
)

func Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": "v2",
	})
}

// Test echoes the acting user, empty for anonymous requests.
func Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": utils.GetUserIdFromContext(c.Request.Context()),
	})
}
