package notificationrepo

import (
	"context"
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements ports.NotificationRepository using
// GORM. Requires the connection to be opened with TranslateError so unique
// violations surface as gorm.ErrDuplicatedKey.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add saves a new notification event. A dedupe-key collision returns
// ports.ErrDuplicateNotification.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Event) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrDuplicateNotification
	}
	return err
}

// Update saves an existing notification event's delivery state.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Event) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Select("sent_at", "attempts", "next_attempt_at", "abandoned").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	return nil
}

// Get retrieves a notification event by ID.
func (r *GormNotificationRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*notification.Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("notification", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetAllDue retrieves unsent, unabandoned events whose scheduled attempt time
// has passed, oldest first.
func (r *GormNotificationRepository) GetAllDue(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*notification.Event, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL AND abandoned = false AND next_attempt_at <= ?", now).
		Order("next_attempt_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*notification.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		events = append(events, event)
	}

	return events, nil
}
