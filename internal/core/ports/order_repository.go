// Package ports defines the contracts between the domain layer and
// infrastructure: repositories, the unit of work, the realtime/stream
// publisher and the outbound message channel. Adapters implement these
// interfaces, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Returns a not-found error if the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// complete with items and both status axes.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
