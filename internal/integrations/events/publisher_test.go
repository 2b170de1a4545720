package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryWriter struct {
	messages []kafka.Message
	err      error
}

func (w *memoryWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *memoryWriter) Close() error { return nil }

func TestPublisher_Publish(t *testing.T) {
	w := &memoryWriter{}
	p := NewPublisherWithWriter(w)
	amount := 5000.0
	refundID := int64(12)

	err := p.Publish(context.Background(), Event{
		Type:       TypeRefundInitiated,
		BookingID:  42,
		UserID:     7,
		ProviderID: 3,
		RefundID:   &refundID,
		Amount:     &amount,
		OccurredAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, w.messages, 1)
	assert.Equal(t, "42", string(w.messages[0].Key))
	assert.Equal(t, "event-type", w.messages[0].Headers[0].Key)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, "refund.initiated", decoded["type"])
	assert.Equal(t, 5000.0, decoded["amount"])
	assert.Equal(t, 12.0, decoded["refundId"])
}

func TestPublisher_PublishError(t *testing.T) {
	p := NewPublisherWithWriter(&memoryWriter{err: errors.New("leader not available")})

	err := p.Publish(context.Background(), Event{Type: TypeBookingCancelled, BookingID: 1})

	assert.ErrorIs(t, err, ErrPublish)
}
