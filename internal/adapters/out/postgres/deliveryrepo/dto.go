// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery record persistence.
package deliveryrepo

import (
	"time"

	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// records. The tracking number carries a unique index; it is null until first
// assignment so the constraint ignores unassigned rows.
type DeliveryDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;index"`
	RiderID        *uuid.UUID `gorm:"type:uuid;index"`
	PickupLat      float64
	PickupLng      float64
	PickupAddress  string
	DropoffLat     float64
	DropoffLng     float64
	DropoffAddress string
	DistanceKm     float64
	Fee            int64
	Status         string  `gorm:"type:varchar(32);index"`
	TrackingNumber *string `gorm:"type:varchar(32);uniqueIndex"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the database table name for delivery records.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery record to its database representation.
func fromDomain(aggregate *delivery.Record) DeliveryDTO {
	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	var trackingNumber *string
	if tn := aggregate.TrackingNumber(); tn != "" {
		trackingNumber = &tn
	}

	return DeliveryDTO{
		ID:             aggregate.ID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		RiderID:        riderID,
		PickupLat:      aggregate.Pickup().Point().Lat(),
		PickupLng:      aggregate.Pickup().Point().Lng(),
		PickupAddress:  aggregate.Pickup().Address(),
		DropoffLat:     aggregate.Dropoff().Point().Lat(),
		DropoffLng:     aggregate.Dropoff().Point().Lng(),
		DropoffAddress: aggregate.Dropoff().Address(),
		DistanceKm:     aggregate.DistanceKm(),
		Fee:            aggregate.Fee().Kobo(),
		Status:         aggregate.Status().String(),
		TrackingNumber: trackingNumber,
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}
}

// toDomain converts a database row to a delivery record using RestoreRecord.
func toDomain(dto DeliveryDTO) (*delivery.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	pickupPoint, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}
	pickup, err := delivery.NewWaypoint(pickupPoint, dto.PickupAddress)
	if err != nil {
		return nil, err
	}

	dropoffPoint, err := kernel.NewGeoPoint(dto.DropoffLat, dto.DropoffLng)
	if err != nil {
		return nil, err
	}
	dropoff, err := delivery.NewWaypoint(dropoffPoint, dto.DropoffAddress)
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var trackingNumber string
	if dto.TrackingNumber != nil {
		trackingNumber = *dto.TrackingNumber
	}

	return delivery.RestoreRecord(
		id,
		orderID,
		riderID,
		pickup,
		dropoff,
		dto.DistanceKm,
		kernel.Money(dto.Fee),
		status,
		trackingNumber,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
