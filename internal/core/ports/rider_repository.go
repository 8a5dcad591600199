package ports

import (
	"context"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for riders.
type RiderRepository interface {
	// Add persists a new rider.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider. Implementations use
	// optimistic concurrency so that two dispatchers cannot claim the same
	// rider: a stale write returns a conflict error.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllAvailable retrieves every rider currently accepting assignments.
	GetAllAvailable(ctx context.Context) ([]*rider.Rider, error)
}
