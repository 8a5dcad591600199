package commands

import (
	"context"
	"time"

	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order in pending status, an unassigned delivery record with the
// requested endpoints, and queues the order-received customer notification,
// all within one transaction.
type CreateOrderCommandHandler struct {
	uowFactory  DispatchUoWFactory
	broadcaster Broadcaster
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a DispatchUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	broadcaster Broadcaster,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the order creation command.
// The order, its delivery record and the queued notification commit or roll
// back together; the realtime broadcast fires only after the commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	ord, err := order.NewOrder(
		cmd.OrderID(), cmd.BusinessID(), cmd.BusinessName(),
		cmd.CustomerID(), cmd.CustomerPhone(), cmd.Items(), cmd.Discount(), now)
	if err != nil {
		return err
	}

	rec, err := delivery.NewRecord(kernel.NewUUID(), ord.ID(), cmd.Pickup(), cmd.Dropoff(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, ord); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, rec); err != nil {
		return err
	}

	if err = queueNotifications(ctx, uow.NotificationRepository(), ord, baseParams(ord)); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.broadcaster.StatusChanged(ctx, ord, rec, now)
	return nil
}
