// Package events publishes domain events to the message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// TypeOrderPaid is emitted once per order created from a completed payment.
const TypeOrderPaid = "order.paid"

// OrderPaid is the payload of TypeOrderPaid.
type OrderPaid struct {
	OrderID         uint      `json:"orderId"`
	UserID          uint      `json:"userId"`
	StripeSessionID string    `json:"stripeSessionId"`
	Total           string    `json:"total"`
	Items           int       `json:"items"`
	PaidAt          time.Time `json:"paidAt"`
}

// Envelope wraps every published payload.
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Publisher delivers events. Publishing is best effort: callers log failures
// and carry on.
type Publisher interface {
	PublishOrderPaid(ctx context.Context, ev OrderPaid) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes JSON envelopes to a Kafka topic, keyed by user id so
// one customer's events stay ordered.
type KafkaPublisher struct {
	w       messageWriter
	timeout time.Duration
}

// NewKafkaPublisher creates a publisher for topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
		timeout: 5 * time.Second,
	}
}

// PublishOrderPaid implements Publisher.
func (p *KafkaPublisher) PublishOrderPaid(ctx context.Context, ev OrderPaid) error {
	body, err := json.Marshal(Envelope{Type: TypeOrderPaid, OccurredAt: ev.PaidAt, Data: ev})
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", TypeOrderPaid, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.UserID), 10)),
		Value: body,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(TypeOrderPaid)},
		},
	})
	if err != nil {
		return fmt.Errorf("events: publish %s: %w", TypeOrderPaid, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// Nop discards events. It is used when no brokers are configured.
type Nop struct {
	Logger *slog.Logger
}

// PublishOrderPaid implements Publisher.
func (n Nop) PublishOrderPaid(ctx context.Context, ev OrderPaid) error {
	if n.Logger != nil {
		n.Logger.DebugContext(ctx, "event dropped, no broker configured",
			slog.String("type", TypeOrderPaid),
			slog.Uint64("order_id", uint64(ev.OrderID)),
		)
	}
	return nil
}

// Close implements Publisher.
func (Nop) Close() error { return nil }

// New returns a Kafka publisher when brokers are configured and Nop otherwise.
func New(brokers []string, topic string, logger *slog.Logger) Publisher {
	if len(brokers) == 0 {
		return Nop{Logger: logger}
	}
	return NewKafkaPublisher(brokers, topic)
}
