// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfilment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryRepoFactory provides access to delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// RiderRepoFactory provides access to rider repository within a transaction.
	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	// NotificationRepoFactory provides access to notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// WebhookRepoFactory provides access to webhook repository within a transaction.
	WebhookRepoFactory interface {
		WebhookRepository() ports.WebhookRepository
	}

	// DispatchUoW manages transactions across the order, delivery and rider
	// aggregates plus the notification outbox. Used by every command that
	// mutates fulfilment state: order mutations queue outbox events in the
	// same transaction.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		RiderRepoFactory
		NotificationRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// WebhookUoW manages transactions for webhook ingestion. The webhook
	// claim and the order mutation commit or roll back together, so a
	// provider retry after a crash replays cleanly.
	WebhookUoW interface {
		TxManager
		WebhookRepoFactory
		OrderRepoFactory
		DeliveryRepoFactory
		RiderRepoFactory
		NotificationRepoFactory
	}

	// WebhookUoWFactory creates new webhook unit of work instances.
	WebhookUoWFactory interface {
		Create() WebhookUoW
	}

	// NotificationUoW manages transactions for the notification dispatcher.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
