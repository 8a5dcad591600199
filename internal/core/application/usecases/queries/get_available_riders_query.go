package queries

import (
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/guard"
)

var ErrGetAvailableRidersQueryIsNotConstructed = errors.New(
	"GetAvailableRidersQuery must be created via NewGetAvailableRidersQuery constructor",
)

// GetAvailableRidersQuery retrieves every rider currently accepting
// assignments, with their last reported position.
//
// Example:
//
//	query := NewGetAvailableRidersQuery()
//	handler := NewGetAvailableRidersQueryHandler(db)
//
//	riders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get riders: %w", err)
//	}
//	fmt.Printf("%d riders available\n", len(riders))
type GetAvailableRidersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableRidersQuery creates a query to retrieve available riders.
// This is a parameterless query.
func NewGetAvailableRidersQuery() GetAvailableRidersQuery {
	return GetAvailableRidersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableRidersQueryIsNotConstructed)
}

// GetAvailableRidersQueryResponse represents one available rider.
// Lat/Lng are nil when the rider has never reported a position.
type GetAvailableRidersQueryResponse struct {
	ID        kernel.UUID
	Name      string
	Phone     string
	Lat       *float64
	Lng       *float64
	UpdatedAt time.Time
}
