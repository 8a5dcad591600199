package queries

import (
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var ErrTrackDeliveryQueryIsNotConstructed = errors.New(
	"TrackDeliveryQuery must be created via NewTrackDeliveryQuery constructor",
)

// TrackDeliveryQuery retrieves the customer-facing tracking view for a
// tracking number. The response deliberately exposes no internal identifiers
// beyond the order number.
//
// Example:
//
//	query, _ := NewTrackDeliveryQuery("TRK-3F2A91C04B7D")
//	handler := NewTrackDeliveryQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s: %s\n", resp.TrackingNumber, resp.DeliveryStatus)
type TrackDeliveryQuery struct { //nolint:recvcheck //using for validation
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewTrackDeliveryQuery creates a query for the given tracking number.
func NewTrackDeliveryQuery(trackingNumber string) (TrackDeliveryQuery, error) {
	if trackingNumber == "" {
		return TrackDeliveryQuery{}, errs.NewValueIsRequiredError("trackingNumber")
	}

	return TrackDeliveryQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrTrackDeliveryQueryIsNotConstructed)
}

// TrackingNumber returns the tracking reference to look up.
func (q TrackDeliveryQuery) TrackingNumber() string {
	return q.trackingNumber
}

// TrackDeliveryQueryResponse is the public tracking view.
type TrackDeliveryQueryResponse struct {
	TrackingNumber string
	OrderNumber    string
	BusinessName   string
	OrderStatus    string
	DeliveryStatus string
	RiderName      string
	RiderPhone     string
	DropoffAddress string
	Fee            kernel.Money
	UpdatedAt      time.Time
}
