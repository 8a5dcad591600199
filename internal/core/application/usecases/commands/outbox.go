package commands

import (
	"context"
	"errors"
	"fmt"
	"math"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
)

// riderSpeedKmh approximates average rider speed through Lagos traffic. It is
// only used to phrase the arrival estimate in customer messages.
const riderSpeedKmh = 20.0

// estimateArrival turns the frozen route distance into the arrival phrase for
// the out-for-delivery message. Short hops quote a floor so the message never
// promises an instant arrival.
func estimateArrival(distanceKm float64) string {
	minutes := int(math.Ceil(distanceKm / riderSpeedKmh * 60))
	if minutes < 5 {
		minutes = 5
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// baseParams snapshots the order fields every message template may reference.
// Handlers add rider and tracking details on top when they have them.
func baseParams(ord *order.Order) notification.TemplateParams {
	return notification.TemplateParams{
		OrderNumber:  ord.Number(),
		BusinessName: ord.BusinessName(),
		Amount:       ord.Total(),
	}
}

// queueNotifications drains the order's pending domain events and persists one
// notification per event inside the caller's transaction. The dedupe key makes
// the queue idempotent: an event type already queued for this order is skipped,
// not duplicated, so replayed commands never double-message the customer.
func queueNotifications(
	ctx context.Context,
	repo ports.NotificationRepository,
	ord *order.Order,
	params notification.TemplateParams,
) error {
	for _, evt := range ord.PopEvents() {
		event, err := notification.NewEvent(
			kernel.NewUUID(), evt.OrderID, evt.Type, ord.CustomerPhone(), params, evt.OccurredAt)
		if err != nil {
			return err
		}

		if err = repo.Add(ctx, event); err != nil {
			if errors.Is(err, ports.ErrDuplicateNotification) {
				continue
			}
			return err
		}
	}

	return nil
}
