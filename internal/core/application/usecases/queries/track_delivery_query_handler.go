package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackDeliveryQueryHandler serves the public tracking page lookup.
type TrackDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewTrackDeliveryQueryHandler creates a handler for tracking lookups.
// Requires a GORM database connection for query execution.
func NewTrackDeliveryQueryHandler(db *gorm.DB) TrackDeliveryQueryHandler {
	return TrackDeliveryQueryHandler{db: db}
}

// Handle executes the lookup.
// Returns errs.ErrObjectNotFound for an unknown tracking number.
func (h TrackDeliveryQueryHandler) Handle(
	ctx context.Context,
	query TrackDeliveryQuery,
) (TrackDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			d.tracking_number,
			d.status,
			d.fee,
			d.dropoff_address,
			d.updated_at,
			o.id,
			o.business_name,
			o.status,
			COALESCE(r.name, ''),
			COALESCE(r.phone, '')
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		LEFT JOIN riders r ON r.id = d.rider_id
		WHERE d.tracking_number = ?
	`, query.TrackingNumber()).Row()

	var (
		resp    TrackDeliveryQueryResponse
		orderID uuid.UUID
		fee     int64
	)

	err := row.Scan(
		&resp.TrackingNumber,
		&resp.DeliveryStatus,
		&fee,
		&resp.DropoffAddress,
		&resp.UpdatedAt,
		&orderID,
		&resp.BusinessName,
		&resp.OrderStatus,
		&resp.RiderName,
		&resp.RiderPhone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackDeliveryQueryResponse{}, errs.NewObjectNotFoundError(
			"trackingNumber", query.TrackingNumber())
	}
	if err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	resp.OrderNumber = order.NumberFor(id)
	resp.Fee = kernel.Money(fee)
	return resp, nil
}
