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
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/locks"
)

// IngestDeliveryWebhookCommandHandler applies a logistics provider callback
// to the delivery referenced by tracking number. The same compare-and-set
// token claim as the payment webhook makes provider retries harmless.
type IngestDeliveryWebhookCommandHandler struct {
	uowFactory  WebhookUoWFactory
	orderLocks  *locks.KeyedMutex
	dispatcher  services.RiderDispatcher
	broadcaster Broadcaster
}

// NewIngestDeliveryWebhookCommandHandler creates a handler for logistics
// provider callbacks.
func NewIngestDeliveryWebhookCommandHandler(
	uowFactory WebhookUoWFactory,
	orderLocks *locks.KeyedMutex,
	dispatcher services.RiderDispatcher,
	broadcaster Broadcaster,
) IngestDeliveryWebhookCommandHandler {
	return IngestDeliveryWebhookCommandHandler{
		uowFactory:  uowFactory,
		orderLocks:  orderLocks,
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
	}
}

// Handle processes the callback. A replayed token succeeds as a no-op, as
// does reporting the status the delivery already holds.
func (h IngestDeliveryWebhookCommandHandler) Handle(
	ctx context.Context,
	cmd IngestDeliveryWebhookCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderID, err := h.resolveOrderID(ctx, cmd.TrackingNumber())
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

	err = uow.WebhookRepository().Claim(ctx, cmd.Provider(), cmd.Token(), now)
	if errors.Is(err, ports.ErrWebhookAlreadySeen) {
		return nil
	}
	if err != nil {
		return err
	}

	rec, err := uow.DeliveryRepository().GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrDeliveryNotFound
	}
	if err != nil {
		return err
	}

	if rec.Status() == cmd.Target() {
		return uow.Commit(ctx)
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

func (h IngestDeliveryWebhookCommandHandler) resolveOrderID(
	ctx context.Context,
	trackingNumber string,
) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rec, err := uow.DeliveryRepository().GetByTrackingNumber(ctx, trackingNumber)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, ErrDeliveryNotFound
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	return rec.OrderID(), nil
}
