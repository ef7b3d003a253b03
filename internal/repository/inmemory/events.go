package inmemory

import (
	"context"
	"sync"

	"github.com/velog-io/velog-api/internal/enum"
)

type PublishedEvent struct {
	EntityId   string
	EntityType enum.EntityType
	Message    interface{}
}

// EventRecorder is an EventPublisher that keeps what it was given.
type EventRecorder struct {
	mu     sync.Mutex
	events []PublishedEvent
	Err    error
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) PublishEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, PublishedEvent{EntityId: entityId, EntityType: entityType, Message: message})
	return nil
}

func (r *EventRecorder) Close() error {
	return nil
}

func (r *EventRecorder) Events() []PublishedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PublishedEvent(nil), r.events...)
}
