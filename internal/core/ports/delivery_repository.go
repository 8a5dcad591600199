package ports

import (
	"context"

	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery records.
// An order retains every historical record; only the latest is "active".
type DeliveryRepository interface {
	// Add persists a new delivery record.
	Add(ctx context.Context, aggregate *delivery.Record) error

	// Update persists changes to an existing delivery record.
	Update(ctx context.Context, aggregate *delivery.Record) error

	// Get retrieves a delivery record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Record, error)

	// GetActiveByOrder retrieves the latest delivery record for an order.
	// Returns a not-found error when the order has no delivery record yet.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Record, error)

	// GetByTrackingNumber retrieves a delivery record by its opaque tracking
	// number. Used by the customer tracking page.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*delivery.Record, error)
}
