package notification

import (
	"fmt"

	"fulfilment/internal/pkg/errs"
)

// EventType identifies which customer-facing message a notification carries.
// It is a closed set: every value maps to exactly one template in the message
// catalog, and templates are never interpolated from free-form user content.
type EventType int

const (
	// UnknownEvent represents an invalid or undefined event type.
	// This value (0) helps catch uninitialized EventType values.
	UnknownEvent EventType = iota

	// OrderReceived fires when a new order is created.
	OrderReceived

	// OrderConfirmed fires when the order transitions to confirmed.
	OrderConfirmed

	// OrderPreparing fires when the business starts preparing the order.
	OrderPreparing

	// OrderReady fires when the order is packed and ready for pickup.
	OrderReady

	// RiderAssigned fires when a rider is assigned to the delivery.
	RiderAssigned

	// OutForDelivery fires when the order leaves for the customer.
	OutForDelivery

	// Delivered fires when the order reaches the customer.
	Delivered

	// Cancelled fires when the order is cancelled.
	Cancelled

	// PaymentReceived fires when a payment is confirmed.
	PaymentReceived

	// PaymentFailed fires when a payment attempt fails.
	PaymentFailed
)

func getEventTypeStrings() map[EventType]string {
	return map[EventType]string{
		UnknownEvent:    "UnknownEvent",
		OrderReceived:   "OrderReceived",
		OrderConfirmed:  "OrderConfirmed",
		OrderPreparing:  "OrderPreparing",
		OrderReady:      "OrderReady",
		RiderAssigned:   "RiderAssigned",
		OutForDelivery:  "OutForDelivery",
		Delivered:       "Delivered",
		Cancelled:       "Cancelled",
		PaymentReceived: "PaymentReceived",
		PaymentFailed:   "PaymentFailed",
	}
}

// EventTypeFromString parses an event type from its canonical name.
// Used when reconstructing events from persistence.
func EventTypeFromString(s string) (EventType, error) {
	for eventType, name := range getEventTypeStrings() {
		if name == s && eventType != UnknownEvent {
			return eventType, nil
		}
	}
	return UnknownEvent, errs.NewValueIsInvalidErrorWithCause("eventType",
		fmt.Errorf("%q is not a valid event type", s))
}

// Validate checks the EventType is one of the closed set.
// UnknownEvent (0) and any other value are invalid.
func (t EventType) Validate() error {
	if t <= UnknownEvent || t > PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("event type is invalid",
			fmt.Errorf("%d is not a valid event type", t))
	}
	return nil
}

// String returns the event type name, or "UnknownEvent" for invalid values.
// Implements fmt.Stringer.
func (t EventType) String() string {
	if s, ok := getEventTypeStrings()[t]; ok {
		return s
	}
	return "UnknownEvent"
}
