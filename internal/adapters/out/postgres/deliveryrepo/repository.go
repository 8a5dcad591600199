package deliveryrepo

import (
	"context"
	"errors"

	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add saves a new delivery record to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing delivery record to the database.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("rider_id", "distance_km", "fee", "status", "tracking_number", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	return nil
}

// Get retrieves a delivery record by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOrder retrieves the latest delivery record for an order.
func (r *GormDeliveryRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*delivery.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("delivery for order", orderID.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves a delivery record by tracking number.
func (r *GormDeliveryRepository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber string,
) (*delivery.Record, error) {
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("trackingNumber")
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("delivery", trackingNumber)
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}
