// Package kafka publishes order status changes to the order-events topic for
// downstream consumers (analytics, merchant dashboards).
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfilment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// statusChangeMessage is the wire form of a status change event.
type statusChangeMessage struct {
	OrderID        string    `json:"orderId"`
	BusinessID     string    `json:"businessId"`
	OrderStatus    string    `json:"orderStatus"`
	PaymentStatus  string    `json:"paymentStatus"`
	DeliveryStatus string    `json:"deliveryStatus,omitempty"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// StatusChangePublisher implements ports.EventPublisher over a Kafka topic.
// Messages are keyed by order ID, so changes for one order land on one
// partition and stay ordered.
type StatusChangePublisher struct {
	writer *kafka.Writer
}

// NewStatusChangePublisher creates a publisher writing to the given brokers
// and topic.
func NewStatusChangePublisher(brokers []string, topic string) *StatusChangePublisher {
	return &StatusChangePublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish writes one status change to the topic.
func (p *StatusChangePublisher) Publish(ctx context.Context, change ports.StatusChange) error {
	payload, err := json.Marshal(statusChangeMessage{
		OrderID:        change.OrderID.String(),
		BusinessID:     change.BusinessID.String(),
		OrderStatus:    change.OrderStatus,
		PaymentStatus:  change.PaymentStatus,
		DeliveryStatus: change.DeliveryStatus,
		TrackingNumber: change.TrackingNumber,
		OccurredAt:     change.OccurredAt,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(change.OrderID.String()),
		Value: payload,
	})
}

// Close flushes and closes the underlying writer.
func (p *StatusChangePublisher) Close() error {
	return p.writer.Close()
}
