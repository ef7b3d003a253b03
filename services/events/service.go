package events

import (
	"context"

	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/enum"
	"github.com/velog-io/velog-api/internal/logger"
)

// NewEventPublisher connects to RabbitMQ, or returns a publisher that drops events when rabbitmqURL is empty.
func NewEventPublisher(rabbitmqURL string, log logger.Logger, config *PublisherConfig) (interfaces.EventPublisher, error) {
	if rabbitmqURL == "" {
		log.Warn("RABBITMQ_URL not set, domain events will not be published")
		return NewNoopPublisher(), nil
	}
	return NewRabbitMQPublisher(rabbitmqURL, log, config)
}

type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
