// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read projection-friendly rows
// straight from the database.
package queries

import (
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its lines and latest delivery state.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderID)
//	handler := NewGetOrderQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", resp.Number, resp.Status)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is one order line in a query response.
type OrderItemResponse struct {
	ProductID kernel.UUID
	UnitPrice kernel.Money
	Quantity  int
	Subtotal  kernel.Money
}

// DeliverySummaryResponse is the delivery slice of an order response.
// Nil rider fields mean the delivery is still unassigned.
type DeliverySummaryResponse struct {
	ID             kernel.UUID
	Status         string
	TrackingNumber string
	RiderName      string
	RiderPhone     string
	DistanceKm     float64
	Fee            kernel.Money
}

// GetOrderQueryResponse carries the full order read model.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Number        string
	BusinessID    kernel.UUID
	BusinessName  string
	CustomerID    kernel.UUID
	CustomerPhone string
	Status        string
	PaymentStatus string
	Items         []OrderItemResponse
	ItemsSubtotal kernel.Money
	DeliveryFee   kernel.Money
	Discount      kernel.Money
	Total         kernel.Money
	Delivery      *DeliverySummaryResponse
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
