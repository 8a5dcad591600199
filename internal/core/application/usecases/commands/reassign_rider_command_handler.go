package commands

import (
	"context"
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/rider"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/locks"
)

// ReassignRiderCommandHandler moves a delivery to a replacement rider: the
// old rider is released, the route re-priced, and the order's delivery fee
// updated with the new quote.
type ReassignRiderCommandHandler struct {
	uowFactory  DispatchUoWFactory
	orderLocks  *locks.KeyedMutex
	dispatcher  services.RiderDispatcher
	tariff      services.Tariff
	broadcaster Broadcaster
}

// NewReassignRiderCommandHandler creates a handler for delivery reassignment.
func NewReassignRiderCommandHandler(
	uowFactory DispatchUoWFactory,
	orderLocks *locks.KeyedMutex,
	dispatcher services.RiderDispatcher,
	tariff services.Tariff,
	broadcaster Broadcaster,
) ReassignRiderCommandHandler {
	return ReassignRiderCommandHandler{
		uowFactory:  uowFactory,
		orderLocks:  orderLocks,
		dispatcher:  dispatcher,
		tariff:      tariff,
		broadcaster: broadcaster,
	}
}

// Handle processes the reassignment command.
// Legal only while the delivery is assigned or failed. A fresh rider-assigned
// notification is queued for the new rider; the dedupe key already used by
// the first assignment keeps the customer from being messaged twice.
func (h ReassignRiderCommandHandler) Handle(ctx context.Context, cmd ReassignRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderID, err := h.resolveOrderID(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	unlock := h.orderLocks.LockPair(orderID.String(), cmd.NewRiderID().String())
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

	ord, err := uow.OrderRepository().Get(ctx, rec.OrderID())
	if err != nil {
		return err
	}

	newRider, err := uow.RiderRepository().Get(ctx, cmd.NewRiderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRiderNotFound
	}
	if err != nil {
		return err
	}

	var oldRider *rider.Rider
	if rec.RiderID() != nil && !rec.RiderID().IsEqual(newRider.ID()) {
		oldRider, err = uow.RiderRepository().Get(ctx, *rec.RiderID())
		if err != nil {
			return err
		}
	}

	if err = h.dispatcher.Reassign(rec, oldRider, newRider, h.tariff, now); err != nil {
		return err
	}

	if err = ord.SetDeliveryFee(rec.Fee(), now); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, rec); err != nil {
		return err
	}
	if oldRider != nil {
		if err = uow.RiderRepository().Update(ctx, oldRider); err != nil {
			return err
		}
	}
	if err = uow.RiderRepository().Update(ctx, newRider); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	params := baseParams(ord)
	params.RiderName = newRider.Name()
	params.RiderPhone = newRider.Phone()
	params.TrackingNumber = rec.TrackingNumber()

	event, err := notification.NewEvent(
		kernel.NewUUID(), ord.ID(), notification.RiderAssigned, ord.CustomerPhone(), params, now)
	if err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, event); err != nil &&
		!errors.Is(err, ports.ErrDuplicateNotification) {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.broadcaster.StatusChanged(ctx, ord, rec, now)
	return nil
}

func (h ReassignRiderCommandHandler) resolveOrderID(
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
