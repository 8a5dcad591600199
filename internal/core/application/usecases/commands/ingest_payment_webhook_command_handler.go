package commands

import (
	"context"
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/locks"
)

// IngestPaymentWebhookCommandHandler applies a payment provider callback to
// the order's payment status.
//
// Idempotency is compare-and-set, not read-then-check: the (provider, token)
// claim is inserted in the same transaction as the order mutation, so a retry
// after a crash replays cleanly while a duplicate of a committed callback is
// acknowledged without side effects.
type IngestPaymentWebhookCommandHandler struct {
	uowFactory  WebhookUoWFactory
	orderLocks  *locks.KeyedMutex
	broadcaster Broadcaster
}

// NewIngestPaymentWebhookCommandHandler creates a handler for payment
// provider callbacks.
func NewIngestPaymentWebhookCommandHandler(
	uowFactory WebhookUoWFactory,
	orderLocks *locks.KeyedMutex,
	broadcaster Broadcaster,
) IngestPaymentWebhookCommandHandler {
	return IngestPaymentWebhookCommandHandler{
		uowFactory:  uowFactory,
		orderLocks:  orderLocks,
		broadcaster: broadcaster,
	}
}

// Handle processes the callback. A replayed token succeeds as a no-op.
func (h IngestPaymentWebhookCommandHandler) Handle(
	ctx context.Context,
	cmd IngestPaymentWebhookCommand,
) error {
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

	err := uow.WebhookRepository().Claim(ctx, cmd.Provider(), cmd.Token(), now)
	if errors.Is(err, ports.ErrWebhookAlreadySeen) {
		return nil
	}
	if err != nil {
		return err
	}

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	switch cmd.Outcome() {
	case PaymentOutcomePaid:
		err = ord.MarkPaid(now)
		// Payment confirms a pending order. A replay finds the order already
		// confirmed and the same-status no-op keeps it that way.
		if err == nil && ord.Status() == order.Pending {
			err = ord.TransitionTo(order.Confirmed, now)
		}
	case PaymentOutcomeFailed:
		err = ord.MarkPaymentFailed(now)
	case PaymentOutcomeRefunded:
		err = ord.MarkRefunded(now)
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	if err = queueNotifications(ctx, uow.NotificationRepository(), ord, baseParams(ord)); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.broadcaster.StatusChanged(ctx, ord, nil, now)
	return nil
}
