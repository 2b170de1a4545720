package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Типы событий жизненного цикла бронирования
const (
	TypeBookingCancelled     = "booking.cancelled"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeRefundInitiated      = "refund.initiated"
	TypeRefundProcessed      = "refund.processed"
)

// Event событие бронирования, публикуемое в Kafka
type Event struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"bookingId"`
	UserID     int64     `json:"userId"`
	ProviderID int64     `json:"providerId"`
	Status     string    `json:"status,omitempty"`
	RefundID   *int64    `json:"refundId,omitempty"`
	Amount     *float64  `json:"amount,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Writer запись сообщений в Kafka (kafka.Writer)
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события бронирований
// Ключ сообщения - ID бронирования, поэтому события одного бронирования упорядочены
type Publisher struct {
	writer Writer
}

// NewPublisher создает Publisher для списка брокеров и топика
func NewPublisher(brokers []string, topic string) *Publisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func NewPublisherWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

// Publish публикует событие
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: type=%s: %v", ErrEncode, event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: type=%s, booking=%d: %v", ErrPublish, event.Type, event.BookingID, err)
	}

	return nil
}

// Close закрывает соединения с брокерами
func (p *Publisher) Close() error {
	return p.writer.Close()
}
