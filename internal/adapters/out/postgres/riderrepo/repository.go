package riderrepo

import (
	"context"
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/rider"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderRepository implements ports.RiderRepository using GORM.
type GormRiderRepository struct {
	db *gorm.DB
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB) *GormRiderRepository {
	return &GormRiderRepository{db: db}
}

// Add saves a new rider to the database.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing rider. The write is guarded by the rider's
// previous updated_at: a stale write (another claim got there first) affects
// zero rows and reports a conflict instead of silently clobbering it.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ? AND updated_at <= ?", dto.ID, dto.UpdatedAt).
		Select("name", "phone", "status", "lat", "lng", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	return nil
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("rider", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves every rider currently accepting assignments.
func (r *GormRiderRepository) GetAllAvailable(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", rider.Available.String()).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		rdr, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		riders = append(riders, rdr)
	}

	return riders, nil
}
