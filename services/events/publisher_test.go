package events

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velog-io/velog-api/dto"
	"github.com/velog-io/velog-api/internal/enum"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/utils"
)

type plainPayload struct {
	Value string `json:"value"`
}

func TestEventTypeOf(t *testing.T) {
	assert.Equal(t, "series.post_appended", eventTypeOf(dto.SeriesPostAppended{}))
	assert.Equal(t, "series.created", eventTypeOf(dto.SeriesCreated{}))
	assert.Equal(t, "plainPayload", eventTypeOf(plainPayload{}))
	assert.Equal(t, "plainPayload", eventTypeOf(&plainPayload{}))
	assert.Equal(t, "", eventTypeOf(nil))
}

func TestBuildEvent(t *testing.T) {
	ctx := utils.WithCustomContext(context.Background(), &utils.CustomContext{
		AppSource: "velog-api",
		UserId:    "user-1",
	})
	span := opentracing.NoopTracer{}.StartSpan("test")
	defer span.Finish()

	message := dto.SeriesPostAppended{SeriesID: "series-1", PostID: "post-1", Index: 3}
	event := buildEvent(ctx, span, "series-1", enum.SERIES_POST, message)

	assert.True(t, strings.HasPrefix(event.Event.Id, "event_"))
	assert.Equal(t, "series-1", event.Event.EntityId)
	assert.Equal(t, enum.SERIES_POST, event.Event.EntityType)
	assert.Equal(t, "series.post_appended", event.Event.EventType)
	assert.Equal(t, "user-1", event.Metadata.UserId)
	assert.Equal(t, "velog-api", event.Metadata.AppSource)

	_, err := time.Parse(time.RFC3339, event.Metadata.Timestamp)
	require.NoError(t, err)

	body, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"entityType":"SERIES_POST"`)
	assert.Contains(t, string(body), `"index":3`)
}

func TestQueueArgs(t *testing.T) {
	args := queueArgs(*DefaultPublisherConfig())
	assert.Equal(t, amqp091.Table{
		"x-dead-letter-exchange":    ExchangeDeadLetter,
		"x-dead-letter-routing-key": RoutingKeyDeadLetter,
		"x-message-ttl":             DefaultMessageTTL.Milliseconds(),
	}, args)
	assert.NoError(t, args.Validate())
}

func TestNewEventPublisher_NoURL(t *testing.T) {
	log := logger.NewAppLogger(&logger.Config{LogLevel: "error"})
	log.InitLogger()

	publisher, err := NewEventPublisher("", log, nil)
	require.NoError(t, err)
	assert.IsType(t, &NoopPublisher{}, publisher)
	assert.NoError(t, publisher.PublishEvent(context.Background(), "id", enum.SERIES, dto.SeriesCreated{}))
	assert.NoError(t, publisher.Close())
}
