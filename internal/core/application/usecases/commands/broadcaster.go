package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
)

// Broadcaster pushes committed status changes to the event stream and to live
// subscribers. Both targets are best-effort: a failed broadcast is logged and
// never fails the command that produced the change, so the database remains
// the source of truth.
type Broadcaster struct {
	publisher ports.EventPublisher
	stream    ports.OrderStream
	logger    *slog.Logger
}

// NewBroadcaster creates a broadcaster over the given publisher and stream.
func NewBroadcaster(
	publisher ports.EventPublisher,
	stream ports.OrderStream,
	logger *slog.Logger,
) Broadcaster {
	return Broadcaster{
		publisher: publisher,
		stream:    stream,
		logger:    logger,
	}
}

// StatusChanged broadcasts the order's current state. Called by handlers after
// their transaction commits; rec may be nil when the order has no delivery
// record yet.
func (b Broadcaster) StatusChanged(ctx context.Context, ord *order.Order, rec *delivery.Record, at time.Time) {
	change := ports.StatusChange{
		OrderID:       ord.ID(),
		BusinessID:    ord.BusinessID(),
		OrderStatus:   ord.Status().String(),
		PaymentStatus: ord.PaymentStatus().String(),
		OccurredAt:    at,
	}
	if rec != nil {
		change.DeliveryStatus = rec.Status().String()
		change.TrackingNumber = rec.TrackingNumber()
	}

	if b.stream != nil {
		b.stream.Publish(change)
	}

	if b.publisher == nil {
		return
	}
	if err := b.publisher.Publish(ctx, change); err != nil {
		b.logger.WarnContext(ctx, "failed to publish status change",
			"orderID", ord.ID().String(), "error", err)
	}
}
