package commands

import (
	"context"
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/rider"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/locks"
)

// UpdateDeliveryStatusCommandHandler advances a delivery along its state
// machine from rider progress reports. Completing a delivery also completes
// the parent order, so the customer's delivered notification fires from the
// same transaction.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory  DispatchUoWFactory
	orderLocks  *locks.KeyedMutex
	dispatcher  services.RiderDispatcher
	broadcaster Broadcaster
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery
// progress reports.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory DispatchUoWFactory,
	orderLocks *locks.KeyedMutex,
	dispatcher services.RiderDispatcher,
	broadcaster Broadcaster,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory:  uowFactory,
		orderLocks:  orderLocks,
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
	}
}

// Handle processes the progress report.
// The delivery transition, any order completion, the rider release and the
// queued notifications commit atomically. Reporting the status the delivery
// already holds is treated as a duplicate and succeeds without changes.
func (h UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDeliveryStatusCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderID, err := h.resolveOrderID(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	unlock := h.orderLocks.Lock(orderID.String())
	defer unlock()

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rec, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrDeliveryNotFound
	}
	if err != nil {
		return err
	}

	if rec.Status() == cmd.Target() {
		return nil
	}

	ord, err := uow.OrderRepository().Get(ctx, rec.OrderID())
	if err != nil {
		return err
	}

	var rdr *rider.Rider
	if rec.RiderID() != nil {
		rdr, err = uow.RiderRepository().Get(ctx, *rec.RiderID())
		if err != nil {
			return err
		}
	}

	if err = h.dispatcher.UpdateStatus(rec, ord, rdr, cmd.Target(), now); err != nil {
		return err
	}

	if cmd.Target() == delivery.Delivered {
		if err = ord.TransitionTo(order.Delivered, now); err != nil {
			return err
		}
	}

	if err = uow.DeliveryRepository().Update(ctx, rec); err != nil {
		return err
	}
	if rdr != nil {
		if err = uow.RiderRepository().Update(ctx, rdr); err != nil {
			return err
		}
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	params := baseParams(ord)
	params.TrackingNumber = rec.TrackingNumber()
	params.ETA = estimateArrival(rec.DistanceKm())
	if rdr != nil {
		params.RiderName = rdr.Name()
		params.RiderPhone = rdr.Phone()
	}
	if err = queueNotifications(ctx, uow.NotificationRepository(), ord, params); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.broadcaster.StatusChanged(ctx, ord, rec, now)
	return nil
}

func (h UpdateDeliveryStatusCommandHandler) resolveOrderID(
	ctx context.Context,
	deliveryID kernel.UUID,
) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rec, err := uow.DeliveryRepository().Get(ctx, deliveryID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, ErrDeliveryNotFound
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	return rec.OrderID(), nil
}
