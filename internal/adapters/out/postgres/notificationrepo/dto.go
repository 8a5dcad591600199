// Package notificationrepo provides data transfer objects and mapping
// functions for the notification outbox.
package notificationrepo

import (
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notification events. The dedupe key's unique index is what turns duplicate
// queueing attempts into conflicts.
type NotificationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	EventType      string    `gorm:"type:varchar(32)"`
	DedupeKey      string    `gorm:"type:varchar(64);uniqueIndex"`
	RecipientPhone string
	Params         ParamsDTO `gorm:"embedded;embeddedPrefix:param_"`
	SentAt         *time.Time
	Attempts       int
	NextAttemptAt  time.Time `gorm:"index"`
	Abandoned      bool
	CreatedAt      time.Time
}

// TableName specifies the database table name for notification events.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// ParamsDTO represents the embedded template parameters within the
// notifications table.
type ParamsDTO struct {
	OrderNumber    string
	BusinessName   string
	RiderName      string
	RiderPhone     string
	TrackingNumber string
	ETA            string
	Amount         int64
	Reason         string
}

// fromDomain converts a notification event to its database representation.
func fromDomain(aggregate *notification.Event) NotificationDTO {
	params := aggregate.Params()

	return NotificationDTO{
		ID:             aggregate.ID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		EventType:      aggregate.EventType().String(),
		DedupeKey:      aggregate.DedupeKey(),
		RecipientPhone: aggregate.RecipientPhone(),
		Params: ParamsDTO{
			OrderNumber:    params.OrderNumber,
			BusinessName:   params.BusinessName,
			RiderName:      params.RiderName,
			RiderPhone:     params.RiderPhone,
			TrackingNumber: params.TrackingNumber,
			ETA:            params.ETA,
			Amount:         params.Amount.Kobo(),
			Reason:         params.Reason,
		},
		SentAt:        aggregate.SentAt(),
		Attempts:      aggregate.Attempts(),
		NextAttemptAt: aggregate.NextAttemptAt(),
		Abandoned:     aggregate.IsAbandoned(),
		CreatedAt:     aggregate.CreatedAt(),
	}
}

// toDomain converts a database row to a notification event using RestoreEvent.
func toDomain(dto NotificationDTO) (*notification.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	eventType, err := notification.EventTypeFromString(dto.EventType)
	if err != nil {
		return nil, err
	}

	params := notification.TemplateParams{
		OrderNumber:    dto.Params.OrderNumber,
		BusinessName:   dto.Params.BusinessName,
		RiderName:      dto.Params.RiderName,
		RiderPhone:     dto.Params.RiderPhone,
		TrackingNumber: dto.Params.TrackingNumber,
		ETA:            dto.Params.ETA,
		Amount:         kernel.Money(dto.Params.Amount),
		Reason:         dto.Params.Reason,
	}

	return notification.RestoreEvent(
		id,
		orderID,
		eventType,
		dto.DedupeKey,
		dto.RecipientPhone,
		params,
		dto.SentAt,
		dto.Attempts,
		dto.NextAttemptAt,
		dto.Abandoned,
		dto.CreatedAt,
	)
}
