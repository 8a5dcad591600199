package commands

import (
	"context"
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/locks"
)

// AssignRiderCommandHandler claims a rider for a delivery and re-prices the
// parent order with the computed fee.
//
// Locking: the handler first resolves the delivery's order ID in a read-only
// transaction, then takes the order lock and the rider lock as an ordered
// pair. Two dispatchers racing for the same rider therefore serialize, and
// exactly one wins; the loser fails with rider.ErrRiderUnavailable.
type AssignRiderCommandHandler struct {
	uowFactory  DispatchUoWFactory
	orderLocks  *locks.KeyedMutex
	dispatcher  services.RiderDispatcher
	tariff      services.Tariff
	broadcaster Broadcaster
}

// NewAssignRiderCommandHandler creates a handler for rider assignment.
func NewAssignRiderCommandHandler(
	uowFactory DispatchUoWFactory,
	orderLocks *locks.KeyedMutex,
	dispatcher services.RiderDispatcher,
	tariff services.Tariff,
	broadcaster Broadcaster,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory:  uowFactory,
		orderLocks:  orderLocks,
		dispatcher:  dispatcher,
		tariff:      tariff,
		broadcaster: broadcaster,
	}
}

// Handle processes the assignment command.
// On success the delivery is assigned with a frozen distance and fee, the
// rider is busy, the order carries the new delivery fee, and a rider-assigned
// notification is queued. All of it commits atomically.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderID, err := h.resolveOrderID(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	unlock := h.orderLocks.LockPair(orderID.String(), cmd.RiderID().String())
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

	rdr, err := uow.RiderRepository().Get(ctx, cmd.RiderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRiderNotFound
	}
	if err != nil {
		return err
	}

	if err = h.dispatcher.Assign(rec, rdr, h.tariff, now); err != nil {
		return err
	}

	if err = ord.SetDeliveryFee(rec.Fee(), now); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, rec); err != nil {
		return err
	}
	if err = uow.RiderRepository().Update(ctx, rdr); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	params := baseParams(ord)
	params.RiderName = rdr.Name()
	params.RiderPhone = rdr.Phone()
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

// resolveOrderID reads the delivery's order reference in a short read-only
// transaction, before any locking.
func (h AssignRiderCommandHandler) resolveOrderID(
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
