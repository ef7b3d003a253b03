package utils

import (
	"context"

	"github.com/gin-gonic/gin"

	velog_errors "github.com/velog-io/velog-api/errors"
)

const (
	GinKeyUserId = "UserId"
)

type CustomContext struct {
	AppSource string
	UserId    string
	ClientIP  string
}

type customContextKeyType string

var customContextKey = customContextKeyType("CUSTOM_CONTEXT")

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey, customContext)
}

func WithCustomContextFromGinRequest(c *gin.Context, appSource string) context.Context {
	customContext := &CustomContext{
		AppSource: appSource,
		UserId:    c.GetString(GinKeyUserId),
		ClientIP:  c.ClientIP(),
	}
	return WithCustomContext(c.Request.Context(), customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey).(*CustomContext)
	if !ok {
		return new(CustomContext)
	}
	return customContext
}

func GetAppSourceFromContext(ctx context.Context) string {
	return GetContext(ctx).AppSource
}

func GetUserIdFromContext(ctx context.Context) string {
	return GetContext(ctx).UserId
}

func SetUserIdInContext(ctx context.Context, userId string) context.Context {
	customContext := *GetContext(ctx)
	customContext.UserId = userId
	return WithCustomContext(ctx, &customContext)
}

// RequireUserId returns the acting user id or an Unauthenticated error.
func RequireUserId(ctx context.Context) (string, error) {
	userId := GetUserIdFromContext(ctx)
	if userId == "" {
		return "", velog_errors.ErrNotLoggedIn
	}
	return userId, nil
}
