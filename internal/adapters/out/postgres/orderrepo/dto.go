// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored as their wire strings so rows stay readable in psql and
// survive enum reordering.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID    uuid.UUID `gorm:"type:uuid;index"`
	BusinessName  string
	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	CustomerPhone string
	DeliveryFee   int64
	Discount      int64
	Status        string    `gorm:"type:varchar(32);index"`
	PaymentStatus string    `gorm:"type:varchar(32)"`
	Items         []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Lines are immutable after creation, so
// updates never touch this table.
type ItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	UnitPrice int64
	Quantity  int
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			UnitPrice: item.UnitPrice().Kobo(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		BusinessID:    aggregate.BusinessID().Bytes(),
		BusinessName:  aggregate.BusinessName(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		CustomerPhone: aggregate.CustomerPhone(),
		DeliveryFee:   aggregate.DeliveryFee().Kobo(),
		Discount:      aggregate.Discount().Kobo(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		Items:         items,
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// toDomain converts a database row to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(productID, kernel.Money(itemDTO.UnitPrice), itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		businessID,
		dto.BusinessName,
		customerID,
		dto.CustomerPhone,
		items,
		kernel.Money(dto.DeliveryFee),
		kernel.Money(dto.Discount),
		status,
		paymentStatus,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
