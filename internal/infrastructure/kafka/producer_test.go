package kafka

import (
	"testing"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	event := &usecase.OutboxEvent{
		AggregateID: uuid.New(),
		EventType:   usecase.CategoryDeleted,
		Payload:     []byte(`{"event_type":"category.deleted"}`),
	}

	msg := newMessage(usecase.NewWriteRawMessageReq(event))

	assert.Equal(t, []byte(event.AggregateID.String()), msg.Key)
	assert.Equal(t, event.Payload, msg.Value)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, eventTypeHeader, msg.Headers[0].Key)
	assert.Equal(t, []byte("category.deleted"), msg.Headers[0].Value)
}

func TestNewMessage_NoEventType(t *testing.T) {
	msg := newMessage(&usecase.WriteRawMessageReq{Key: "k", Payload: []byte("v")})
	assert.Empty(t, msg.Headers)
}
