// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence.
package riderrepo

import (
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting riders.
// Lat/Lng are null until the rider first reports a position.
type RiderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Phone     string
	Status    string `gorm:"type:varchar(32);index"`
	Lat       *float64
	Lng       *float64
	UpdatedAt time.Time
}

// TableName specifies the database table name for riders.
func (RiderDTO) TableName() string {
	return "riders"
}

// fromDomain converts a rider aggregate to its database representation.
func fromDomain(aggregate *rider.Rider) RiderDTO {
	var lat, lng *float64
	if loc := aggregate.CurrentLocation(); loc != nil {
		latVal, lngVal := loc.Lat(), loc.Lng()
		lat, lng = &latVal, &lngVal
	}

	return RiderDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Phone:     aggregate.Phone(),
		Status:    aggregate.Status().String(),
		Lat:       lat,
		Lng:       lng,
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// toDomain converts a database row to a rider aggregate using RestoreRider.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := rider.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return rider.RestoreRider(id, dto.Name, dto.Phone, status, location, dto.UpdatedAt)
}
