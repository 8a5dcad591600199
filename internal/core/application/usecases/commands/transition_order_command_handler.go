package commands

import (
	"context"
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/rider"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/locks"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrDeliveryNotFound = errors.New("delivery not found")
	ErrRiderNotFound    = errors.New("rider not found")
)

// TransitionOrderCommandHandler moves an order along its fulfilment state
// machine. Per-order mutations are serialized through a keyed mutex, so two
// concurrent transitions of the same order cannot interleave.
//
// Cancellation is the one cross-aggregate edge: an order with an active
// delivery releases its rider synchronously, in the same transaction, so a
// rider is never left busy against a cancelled order.
type TransitionOrderCommandHandler struct {
	uowFactory  DispatchUoWFactory
	orderLocks  *locks.KeyedMutex
	dispatcher  services.RiderDispatcher
	broadcaster Broadcaster
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	orderLocks *locks.KeyedMutex,
	dispatcher services.RiderDispatcher,
	broadcaster Broadcaster,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:  uowFactory,
		orderLocks:  orderLocks,
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
	}
}

// Handle processes the transition command.
// Requesting the status the order already holds succeeds without writing
// anything. Illegal moves surface order.ErrInvalidTransition untouched so the
// transport layer can map them to a client error.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.orderLocks.Lock(cmd.OrderID().String())
	defer unlock()

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if cmd.Target() == ord.Status() {
		return nil
	}

	if err = ord.TransitionTo(cmd.Target(), now); err != nil {
		return err
	}

	params := baseParams(ord)
	params.Reason = cmd.Reason()

	var rec *delivery.Record
	switch cmd.Target() {
	case order.Cancelled:
		rec, err = h.releaseDelivery(ctx, uow, ord, now)
	case order.OutForDelivery:
		rec, err = h.attachDeliveryParams(ctx, uow, ord, &params)
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
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

// attachDeliveryParams fills rider and arrival details into the message params
// when the order has an active delivery. A manual transition without one still
// notifies the customer, just without rider details.
func (h TransitionOrderCommandHandler) attachDeliveryParams(
	ctx context.Context,
	uow DispatchUoW,
	ord *order.Order,
	params *notification.TemplateParams,
) (*delivery.Record, error) {
	rec, err := uow.DeliveryRepository().GetActiveByOrder(ctx, ord.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	params.TrackingNumber = rec.TrackingNumber()
	params.ETA = estimateArrival(rec.DistanceKm())

	if rec.RiderID() != nil {
		rdr, err := uow.RiderRepository().Get(ctx, *rec.RiderID())
		if err != nil {
			return nil, err
		}
		params.RiderName = rdr.Name()
		params.RiderPhone = rdr.Phone()
	}

	return rec, nil
}

// releaseDelivery detaches an active delivery and its rider during
// cancellation. Orders without a delivery record, or with an inactive one,
// need no release.
func (h TransitionOrderCommandHandler) releaseDelivery(
	ctx context.Context,
	uow DispatchUoW,
	ord *order.Order,
	now time.Time,
) (*delivery.Record, error) {
	rec, err := uow.DeliveryRepository().GetActiveByOrder(ctx, ord.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !rec.Status().IsActive() {
		return rec, nil
	}

	var rdr *rider.Rider
	if rec.RiderID() != nil {
		rdr, err = uow.RiderRepository().Get(ctx, *rec.RiderID())
		if err != nil {
			return nil, err
		}
	}

	if err = h.dispatcher.ReleaseForCancellation(rec, rdr, now); err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Update(ctx, rec); err != nil {
		return nil, err
	}

	if rdr != nil {
		if err = uow.RiderRepository().Update(ctx, rdr); err != nil {
			return nil, err
		}
	}

	return rec, nil
}
