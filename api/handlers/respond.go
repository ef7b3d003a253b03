package handlers

import (
	"github.com/gin-gonic/gin"

	api_errors "github.com/velog-io/velog-api/api/errors"
)

// respondError writes err with the status and code of its kind.
func respondError(c *gin.Context, err error) {
	resolverErr := api_errors.FromError(err).(*api_errors.ResolverError)

	body := gin.H{
		"code":    resolverErr.Code,
		"message": resolverErr.Message,
	}
	if len(resolverErr.Fields) > 0 {
		body["fields"] = resolverErr.Fields
	}
	c.AbortWithStatusJSON(api_errors.HTTPStatus(err), body)
}
