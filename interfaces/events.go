package interfaces

import (
	"context"

	"github.com/velog-io/velog-api/internal/enum"
)

type EventPublisher interface {
	PublishEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error
	Close() error
}
