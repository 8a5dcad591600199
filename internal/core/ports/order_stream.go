package ports

import (
	"fulfilment/internal/core/domain/model/kernel"
)

// OrderStream fans status changes out to live subscribers, keyed by order.
// Subscribers with full buffers lose the oldest delta rather than blocking
// publishers.
type OrderStream interface {
	// Publish delivers a change to every subscriber of the order. Never blocks.
	Publish(change StatusChange)

	// Subscribe registers a subscriber for the order's changes. The returned
	// cancel func must be called to release the subscription.
	Subscribe(orderID kernel.UUID) (<-chan StatusChange, func())
}
