package order

import (
	"errors"
	"fmt"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem constructor.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line: a product, its unit price at purchase time, and a
// quantity. Items are immutable value objects; the line subtotal is derived.
type Item struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	unitPrice kernel.Money
	quantity  int

	guard guard.ConstructorGuard
}

// NewItem creates an order line. Quantity must be at least 1; unit price is a
// Money value and therefore already non-negative.
func NewItem(productID kernel.UUID, unitPrice kernel.Money, quantity int) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the product this line refers to.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// UnitPrice returns the per-unit price captured at purchase time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// Subtotal returns unitPrice × quantity.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.MulQty(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d kobo is negative", unitPrice.Kobo()))
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}
