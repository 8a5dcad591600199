package notification

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

const (
	// MaxSendAttempts is the number of delivery attempts before an event is abandoned.
	MaxSendAttempts = 5

	// retryBaseDelay is the backoff delay after the first failed attempt.
	// The delay doubles with each subsequent failure.
	retryBaseDelay = 30 * time.Second
)

var (
	// ErrEventIsNotConstructed is returned when a NotificationEvent instance was
	// not created through a constructor.
	ErrEventIsNotConstructed = errors.New(
		"NotificationEvent must be created via NewEvent or RestoreEvent constructor")

	// ErrEventAlreadySent is returned when mutating an event that has already
	// been delivered. Sent events are immutable.
	ErrEventAlreadySent = errors.New("notification event is already sent")

	// ErrEventAbandoned is returned when retrying an event that exhausted its
	// send attempts.
	ErrEventAbandoned = errors.New("notification event is abandoned after max attempts")
)

// DedupeKey derives the stable deduplication key for an (order, event) pair.
// The key guarantees at-most-once customer messaging: an order never produces
// two notifications of the same type, no matter how many times the triggering
// transition is replayed.
func DedupeKey(orderID kernel.UUID, eventType EventType) string {
	sum := sha256.Sum256([]byte(orderID.String() + "|" + eventType.String()))
	return hex.EncodeToString(sum[:])
}

// TemplateParams carries the typed parameters a message template may reference.
// The schema is fixed: templates select from these fields and nothing else,
// so outbound messages never interpolate unsanitized user content.
type TemplateParams struct {
	OrderNumber    string
	BusinessName   string
	RiderName      string
	RiderPhone     string
	TrackingNumber string
	ETA            string
	Amount         kernel.Money
	Reason         string
}

// Event is a customer notification pending or completed delivery.
// An event is created exactly once per (order, event type) pair when a state
// transition fires, and becomes immutable once sent. Undelivered events are
// retried on an exponential backoff schedule until MaxSendAttempts is reached.
type Event struct {
	id             kernel.UUID
	orderID        kernel.UUID
	eventType      EventType
	dedupeKey      string
	recipientPhone string
	params         TemplateParams
	sentAt         *time.Time
	attempts       int
	nextAttemptAt  time.Time
	abandoned      bool
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewEvent creates a pending notification for an order state transition.
// The dedupe key is derived from the order ID and event type; recipientPhone
// must be non-empty. The event is immediately eligible for its first send.
func NewEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	eventType EventType,
	recipientPhone string,
	params TemplateParams,
	now time.Time,
) (*Event, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), eventType.Validate()); err != nil {
		return nil, err
	}
	if recipientPhone == "" {
		return nil, errs.NewValueIsRequiredError("recipientPhone")
	}

	return &Event{
		id:             id,
		orderID:        orderID,
		eventType:      eventType,
		dedupeKey:      DedupeKey(orderID, eventType),
		recipientPhone: recipientPhone,
		params:         params,
		nextAttemptAt:  now,
		createdAt:      now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreEvent reconstructs an Event from persistent storage, preserving its
// delivery state (sent timestamp, attempt count, retry schedule).
func RestoreEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	eventType EventType,
	dedupeKey string,
	recipientPhone string,
	params TemplateParams,
	sentAt *time.Time,
	attempts int,
	nextAttemptAt time.Time,
	abandoned bool,
	createdAt time.Time,
) (*Event, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), eventType.Validate()); err != nil {
		return nil, err
	}
	if dedupeKey == "" {
		return nil, errs.NewValueIsRequiredError("dedupeKey")
	}
	if attempts < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("attempts",
			fmt.Errorf("%d is negative", attempts))
	}

	return &Event{
		id:             id,
		orderID:        orderID,
		eventType:      eventType,
		dedupeKey:      dedupeKey,
		recipientPhone: recipientPhone,
		params:         params,
		sentAt:         sentAt,
		attempts:       attempts,
		nextAttemptAt:  nextAttemptAt,
		abandoned:      abandoned,
		createdAt:      createdAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this notification belongs to.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// EventType returns which template this notification renders.
func (e *Event) EventType() EventType {
	return e.eventType
}

// DedupeKey returns the stable at-most-once key for this event.
func (e *Event) DedupeKey() string {
	return e.dedupeKey
}

// RecipientPhone returns the customer phone number the message is sent to.
func (e *Event) RecipientPhone() string {
	return e.recipientPhone
}

// Params returns the typed template parameters.
func (e *Event) Params() TemplateParams {
	return e.params
}

// SentAt returns the delivery timestamp, or nil while the event is pending.
func (e *Event) SentAt() *time.Time {
	return e.sentAt
}

// Attempts returns how many sends have been attempted.
func (e *Event) Attempts() int {
	return e.attempts
}

// NextAttemptAt returns when the event next becomes eligible for sending.
func (e *Event) NextAttemptAt() time.Time {
	return e.nextAttemptAt
}

// IsAbandoned reports whether the event exhausted its attempts or was
// permanently rejected by the provider.
func (e *Event) IsAbandoned() bool {
	return e.abandoned
}

// IsSent reports whether the message was delivered.
func (e *Event) IsSent() bool {
	return e.sentAt != nil
}

// IsDue reports whether the event should be sent now: pending, not abandoned,
// and past its scheduled attempt time.
func (e *Event) IsDue(now time.Time) bool {
	return !e.IsSent() && !e.abandoned && !now.Before(e.nextAttemptAt)
}

// CreatedAt returns when the event was created.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// MarkSent records successful delivery. Sent events are immutable, so a second
// call fails with ErrEventAlreadySent; callers treat an already-sent event as
// success and must not send again.
func (e *Event) MarkSent(at time.Time) error {
	if e.IsSent() {
		return ErrEventAlreadySent
	}

	sent := at
	e.sentAt = &sent
	return nil
}

// RecordFailure registers a failed send attempt and schedules the next retry
// with exponential backoff (30s, 60s, 120s, ...). After MaxSendAttempts the
// event is abandoned: sentAt stays nil and no further retries happen.
// A permanent provider rejection abandons the event immediately.
func (e *Event) RecordFailure(at time.Time, permanent bool) error {
	if e.IsSent() {
		return ErrEventAlreadySent
	}
	if e.abandoned {
		return ErrEventAbandoned
	}

	e.attempts++
	if permanent || e.attempts >= MaxSendAttempts {
		e.abandoned = true
		return nil
	}

	backoff := retryBaseDelay << (e.attempts - 1)
	e.nextAttemptAt = at.Add(backoff)
	return nil
}
