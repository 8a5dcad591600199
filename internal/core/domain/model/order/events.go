package order

import (
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
)

// DomainEvent records a state change committed by the order aggregate.
// Each successful transition produces exactly one event; handlers consume the
// events to create customer notifications and realtime broadcasts after the
// enclosing transaction commits.
type DomainEvent struct {
	OrderID    kernel.UUID
	Type       notification.EventType
	Status     Status
	OccurredAt time.Time
}

// recordEvent appends a domain event to the aggregate's pending list.
func (o *Order) recordEvent(eventType notification.EventType, at time.Time) {
	o.pendingEvents = append(o.pendingEvents, DomainEvent{
		OrderID:    o.id,
		Type:       eventType,
		Status:     o.status,
		OccurredAt: at,
	})
}

// PopEvents drains and returns the events recorded since the last call.
// Handlers call this once per command, after all mutations succeed.
func (o *Order) PopEvents() []DomainEvent {
	events := o.pendingEvents
	o.pendingEvents = nil
	return events
}

// eventTypeForStatus maps a fulfilment status to the customer notification it
// triggers. Every transition target has a message in the closed catalog.
func eventTypeForStatus(s Status) notification.EventType {
	switch s {
	case Confirmed:
		return notification.OrderConfirmed
	case Preparing:
		return notification.OrderPreparing
	case Ready:
		return notification.OrderReady
	case OutForDelivery:
		return notification.OutForDelivery
	case Delivered:
		return notification.Delivered
	case Cancelled:
		return notification.Cancelled
	default:
		return notification.UnknownEvent
	}
}
