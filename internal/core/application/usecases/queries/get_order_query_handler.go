package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves an order read model from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. The latest delivery record is joined in; orders
// created before their delivery row commits simply report no delivery.
// Returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Items, err = h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	for _, item := range resp.Items {
		resp.ItemsSubtotal = resp.ItemsSubtotal.Add(item.Subtotal)
	}
	resp.Total = resp.ItemsSubtotal.Add(resp.DeliveryFee).Sub(resp.Discount)

	resp.Delivery, err = h.loadDelivery(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			business_id,
			business_name,
			customer_id,
			customer_phone,
			status,
			payment_status,
			delivery_fee,
			discount,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.String()).Row()

	var (
		resp                   GetOrderQueryResponse
		id, businessID, custID uuid.UUID
		deliveryFee, discount  int64
		createdAt, updatedAt   time.Time
	)

	err := row.Scan(
		&id,
		&businessID,
		&resp.BusinessName,
		&custID,
		&resp.CustomerPhone,
		&resp.Status,
		&resp.PaymentStatus,
		&deliveryFee,
		&discount,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BusinessID, err = kernel.UUIDFromBytes(businessID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(custID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Number = order.NumberFor(resp.ID)
	resp.DeliveryFee = kernel.Money(deliveryFee)
	resp.Discount = kernel.Money(discount)
	resp.CreatedAt = createdAt
	resp.UpdatedAt = updatedAt
	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			unit_price,
			quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			productID uuid.UUID
			unitPrice int64
			quantity  int
		)
		if err = rows.Scan(&productID, &unitPrice, &quantity); err != nil {
			return nil, err
		}

		item := OrderItemResponse{
			UnitPrice: kernel.Money(unitPrice),
			Quantity:  quantity,
			Subtotal:  kernel.Money(unitPrice).MulQty(quantity),
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) loadDelivery(
	ctx context.Context,
	orderID kernel.UUID,
) (*DeliverySummaryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.status,
			d.tracking_number,
			d.distance_km,
			d.fee,
			COALESCE(r.name, ''),
			COALESCE(r.phone, '')
		FROM deliveries d
		LEFT JOIN riders r ON r.id = d.rider_id
		WHERE d.order_id = ?
		ORDER BY d.created_at DESC
		LIMIT 1
	`, orderID.String()).Row()

	var (
		summary DeliverySummaryResponse
		id      uuid.UUID
		fee     int64
	)

	err := row.Scan(
		&id,
		&summary.Status,
		&summary.TrackingNumber,
		&summary.DistanceKm,
		&fee,
		&summary.RiderName,
		&summary.RiderPhone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	summary.Fee = kernel.Money(fee)
	return &summary, nil
}
