package ports

import (
	"context"
	"errors"
)

// ErrConcurrentModification is returned when a write loses an optimistic
// concurrency race: the aggregate changed between read and update. Callers
// surface it as a conflict and may retry the whole command.
var ErrConcurrentModification = errors.New("aggregate was modified concurrently")

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	OrderRepository() OrderRepository

	// DeliveryRepository returns a DeliveryRepository instance bound to the current transaction.
	DeliveryRepository() DeliveryRepository

	// RiderRepository returns a RiderRepository instance bound to the current transaction.
	RiderRepository() RiderRepository

	// NotificationRepository returns a NotificationRepository instance bound to the current transaction.
	NotificationRepository() NotificationRepository

	// WebhookRepository returns a WebhookRepository instance bound to the current transaction.
	WebhookRepository() WebhookRepository
}
