package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new customer order
// together with its delivery endpoints. The delivery fee starts at zero and is
// priced later, when a rider is assigned.
//
// Example:
//
//	item, _ := order.NewItem(productID, kernel.NewMoneyFromNaira(4000), 3)
//	cmd, err := NewCreateOrderCommand(orderID, businessID, "Mama Nkechi Kitchen",
//	    customerID, "+2348012345678", []order.Item{item}, 0, pickup, dropoff)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, broadcaster)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	businessID    kernel.UUID
	businessName  string
	customerID    kernel.UUID
	customerPhone string
	items         []order.Item
	discount      kernel.Money
	pickup        delivery.Waypoint
	dropoff       delivery.Waypoint

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers, requires at least one item and a customer phone, and
// rejects a negative discount. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	businessID kernel.UUID,
	businessName string,
	customerID kernel.UUID,
	customerPhone string,
	items []order.Item,
	discount kernel.Money,
	pickup delivery.Waypoint,
	dropoff delivery.Waypoint,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBusinessID(businessID),
		cmd.setBusinessName(businessName),
		cmd.setCustomerID(customerID),
		cmd.setCustomerPhone(customerPhone),
		cmd.setItems(items),
		cmd.setDiscount(discount),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BusinessID returns the tenant the order belongs to.
func (c CreateOrderCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// BusinessName returns the tenant's display name for customer messages.
func (c CreateOrderCommand) BusinessName() string {
	return c.businessName
}

// CustomerID returns the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CustomerPhone returns the phone number customer notifications go to.
func (c CreateOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// Items returns a copy of the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

// Discount returns the discount applied to the order.
func (c CreateOrderCommand) Discount() kernel.Money {
	return c.discount
}

// Pickup returns the business pickup endpoint.
func (c CreateOrderCommand) Pickup() delivery.Waypoint {
	return c.pickup
}

// Dropoff returns the customer dropoff endpoint.
func (c CreateOrderCommand) Dropoff() delivery.Waypoint {
	return c.dropoff
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBusinessID(businessID kernel.UUID) error {
	if err := businessID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = businessID
	return nil
}

func (c *CreateOrderCommand) setBusinessName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("businessName")
	}

	c.businessName = name
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setCustomerPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("customerPhone")
	}

	c.customerPhone = phone
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setDiscount(discount kernel.Money) error {
	if discount < 0 {
		return errs.NewValueIsInvalidError("discount")
	}

	c.discount = discount
	return nil
}

func (c *CreateOrderCommand) setPickup(pickup delivery.Waypoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}

	c.pickup = pickup
	return nil
}

func (c *CreateOrderCommand) setDropoff(dropoff delivery.Waypoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}

	c.dropoff = dropoff
	return nil
}
