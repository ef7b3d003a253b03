package interfaces

import (
	"context"
	"time"
)

type StorageService interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}
