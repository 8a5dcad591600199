package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/core/ports"
)

// sendBatchSize caps how many due events one pass picks up.
const sendBatchSize = 50

// DispatchNotificationsCommandHandler drains the notification outbox: due
// events are rendered through the message catalog and pushed to the channel
// sender. Each event is processed in its own transaction, so one poisoned
// event never blocks the rest of the batch.
//
// A send failure schedules a retry with exponential backoff; a permanent
// provider rejection abandons the event. Both outcomes are recorded on the
// event itself.
type DispatchNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	catalog    services.MessageCatalog
	sender     ports.MessageSender
	logger     *slog.Logger
}

// NewDispatchNotificationsCommandHandler creates a handler for outbox passes.
func NewDispatchNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	catalog services.MessageCatalog,
	sender ports.MessageSender,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		sender:     sender,
		logger:     logger,
	}
}

// Handle runs one send pass. Individual event failures are recorded and
// logged, not returned: the pass itself only fails on infrastructure errors
// while loading the batch.
func (h DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	due, err := h.loadDue(ctx, now)
	if err != nil {
		return err
	}

	for _, id := range due {
		if err = h.sendOne(ctx, id); err != nil {
			h.logger.WarnContext(ctx, "notification send pass: event failed",
				"eventID", id.String(), "error", err)
		}
	}

	return nil
}

// loadDue picks up the IDs of due events in a read-only transaction.
func (h DispatchNotificationsCommandHandler) loadDue(
	ctx context.Context,
	now time.Time,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events, err := uow.NotificationRepository().GetAllDue(ctx, now, sendBatchSize)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID())
	}
	return ids, nil
}

// sendOne re-reads the event inside its own transaction, sends, and records
// the outcome. The re-read guards against a concurrent pass having already
// handled the event.
func (h DispatchNotificationsCommandHandler) sendOne(ctx context.Context, id kernel.UUID) error {
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	event, err := uow.NotificationRepository().Get(ctx, id)
	if err != nil {
		return err
	}
	if !event.IsDue(now) {
		return nil
	}

	text, err := h.catalog.Render(event.EventType(), event.Params())
	if err != nil {
		// Unrenderable events can never succeed; abandon immediately.
		if failErr := event.RecordFailure(now, true); failErr != nil {
			return failErr
		}
		if updErr := uow.NotificationRepository().Update(ctx, event); updErr != nil {
			return updErr
		}
		if commitErr := uow.Commit(ctx); commitErr != nil {
			return commitErr
		}
		return err
	}

	sendErr := h.sender.Send(ctx, event.RecipientPhone(), text)
	switch {
	case sendErr == nil:
		err = event.MarkSent(now)
	case errors.Is(sendErr, ports.ErrMessageRejected):
		err = event.RecordFailure(now, true)
	default:
		err = event.RecordFailure(now, false)
	}
	if err != nil {
		return err
	}

	if err = uow.NotificationRepository().Update(ctx, event); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return sendErr
}
