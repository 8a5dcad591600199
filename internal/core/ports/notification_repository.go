package ports

import (
	"context"
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
)

// ErrDuplicateNotification is returned by Add when an event with the same
// dedupe key already exists. Callers treat it as "already queued".
var ErrDuplicateNotification = errors.New("notification with this dedupe key already exists")

// NotificationRepository defines the persistence contract for outbound
// notification events. The dedupe key carries a unique constraint: adding a
// duplicate event returns a conflict error, which callers treat as "already
// queued" and ignore.
type NotificationRepository interface {
	// Add persists a new notification event.
	Add(ctx context.Context, aggregate *notification.Event) error

	// Update persists changes to an existing notification event.
	Update(ctx context.Context, aggregate *notification.Event) error

	// Get retrieves a notification event by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Event, error)

	// GetAllDue retrieves pending events whose next attempt time has passed,
	// oldest first, up to limit.
	GetAllDue(ctx context.Context, now time.Time, limit int) ([]*notification.Event, error)
}
