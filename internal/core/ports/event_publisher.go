package ports

import (
	"context"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
)

// StatusChange is the fact published to the event stream whenever an order
// or its delivery changes state. Consumers (analytics, merchant dashboards)
// read it from the order-events topic.
type StatusChange struct {
	OrderID        kernel.UUID
	BusinessID     kernel.UUID
	OrderStatus    string
	PaymentStatus  string
	DeliveryStatus string
	TrackingNumber string
	OccurredAt     time.Time
}

// EventPublisher pushes status changes to the event stream. Publish failures
// must not fail the command that produced the change; callers log and move on.
type EventPublisher interface {
	Publish(ctx context.Context, change StatusChange) error
	Close() error
}
