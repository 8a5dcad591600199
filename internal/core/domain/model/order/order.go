package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrInvalidTransition is returned when a requested state change is not
	// permitted by the transition table, including any transition out of the
	// terminal Delivered and Cancelled statuses.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrTotalInvariantViolated is returned when a mutation would leave the
	// order total below zero, i.e. the discount exceeds items plus delivery fee.
	ErrTotalInvariantViolated = errors.New("order total must equal items + delivery fee - discount and be non-negative")
)

// Order is the aggregate root for a customer purchase, tracked from creation
// to delivery or cancellation. It owns the canonical fulfilment status and the
// payment status, and is the only place either is mutated.
//
// Order maintains these invariants:
//   - At least one line item; quantities >= 1, unit prices >= 0
//   - Total always equals sum(items) + deliveryFee - discount, never negative
//   - Status only moves along the defined transition graph
//   - Delivered and Cancelled are absorbing
//   - Every successful transition records exactly one domain event
//
// All mutating operations on one order are expected to be serialized by the
// caller (per-order lock); the aggregate itself is not safe for concurrent use.
type Order struct {
	id            kernel.UUID
	businessID    kernel.UUID
	businessName  string
	customerID    kernel.UUID
	customerPhone string
	items         []Item
	deliveryFee   kernel.Money
	discount      kernel.Money
	status        Status
	paymentStatus PaymentStatus
	createdAt     time.Time
	updatedAt     time.Time

	pendingEvents []DomainEvent

	guard guard.ConstructorGuard
}

// NewOrder creates an Order in Pending status with a pending payment.
// The order requires at least one item, and the discount may not exceed the
// item subtotal (the delivery fee is zero until a rider is assigned).
// Creation records an OrderReceived domain event.
//
// Example:
//
//	item, _ := order.NewItem(productID, kernel.NewMoneyFromNaira(4000), 3)
//	o, err := order.NewOrder(orderID, businessID, "Mama Nkechi Kitchen",
//	    customerID, "+2348012345678", []order.Item{item}, 0, time.Now())
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	businessID kernel.UUID,
	businessName string,
	customerID kernel.UUID,
	customerPhone string,
	items []Item,
	discount kernel.Money,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setBusinessID(businessID),
		o.setBusinessName(businessName),
		o.setCustomerID(customerID),
		o.setCustomerPhone(customerPhone),
		o.setItems(items),
		o.setDiscount(discount),
	); err != nil {
		return nil, err
	}

	if err := o.validateTotal(); err != nil {
		return nil, err
	}

	o.recordEvent(notification.OrderReceived, now)
	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, preserving its
// statuses, money fields and timestamps. No domain event is recorded: the
// restored order represents already-committed state.
func RestoreOrder(
	id kernel.UUID,
	businessID kernel.UUID,
	businessName string,
	customerID kernel.UUID,
	customerPhone string,
	items []Item,
	deliveryFee kernel.Money,
	discount kernel.Money,
	status Status,
	paymentStatus PaymentStatus,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setBusinessID(businessID),
		o.setBusinessName(businessName),
		o.setCustomerID(customerID),
		o.setCustomerPhone(customerPhone),
		o.setItems(items),
		o.setDiscount(discount),
		o.setStatus(status),
		o.setPaymentStatus(paymentStatus),
	); err != nil {
		return nil, err
	}

	if deliveryFee < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%d kobo is negative", deliveryFee.Kobo()))
	}
	o.deliveryFee = deliveryFee

	if err := o.validateTotal(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
// Called when reconstructing orders from persistence and before repository writes.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BusinessID returns the tenant (business) the order belongs to.
func (o *Order) BusinessID() kernel.UUID {
	return o.businessID
}

// BusinessName returns the display name of the business, snapshotted at
// order creation for use in customer messages.
func (o *Order) BusinessName() string {
	return o.businessName
}

// Number returns the short human-facing order reference derived from the
// order's UUID. Stable for the order's lifetime.
func (o *Order) Number() string {
	return NumberFor(o.id)
}

// NumberFor derives the human-facing order reference for an order ID.
func NumberFor(id kernel.UUID) string {
	raw := strings.ReplaceAll(id.String(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:8])
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CustomerPhone returns the phone number customer notifications go to.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// DeliveryFee returns the current delivery fee (zero until assignment).
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Discount returns the discount applied to the order.
func (o *Order) Discount() kernel.Money {
	return o.discount
}

// ItemsSubtotal returns the sum of all line subtotals.
func (o *Order) ItemsSubtotal() kernel.Money {
	var sum kernel.Money
	for _, item := range o.items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}

// Total returns the derived order total:
// sum(items) + deliveryFee - discount. The invariant that this value is
// non-negative is checked on every mutation, so Total never goes below zero.
func (o *Order) Total() kernel.Money {
	return o.ItemsSubtotal().Add(o.deliveryFee).Sub(o.discount)
}

// Status returns the current fulfilment status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last mutated through a transition.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order to target along the transition graph.
//
// Requesting the status the order already holds is a no-op, not an error:
// nothing changes and no event is recorded. This tolerates duplicate webhook
// deliveries without double-notifying customers.
//
// A successful transition updates status and updatedAt together and records
// exactly one domain event. Illegal moves fail with ErrInvalidTransition and
// leave the order untouched.
func (o *Order) TransitionTo(target Status, at time.Time) error {
	if target == o.status {
		return nil
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = at
	o.recordEvent(eventTypeForStatus(newStatus), at)
	return nil
}

// MarkPaid records a confirmed payment. Paid is idempotent: confirming an
// already-paid order changes nothing and records no event. A payment arriving
// after a failed attempt succeeds.
func (o *Order) MarkPaid(at time.Time) error {
	if o.paymentStatus == PaymentPaid {
		return nil
	}

	newStatus, err := o.paymentStatus.MarkPaid()
	if err != nil {
		return err
	}

	o.paymentStatus = newStatus
	o.updatedAt = at
	o.recordEvent(notification.PaymentReceived, at)
	return nil
}

// MarkPaymentFailed records a declined payment attempt. Idempotent for
// repeated failure callbacks.
func (o *Order) MarkPaymentFailed(at time.Time) error {
	if o.paymentStatus == PaymentFailed {
		return nil
	}

	newStatus, err := o.paymentStatus.MarkFailed()
	if err != nil {
		return err
	}

	o.paymentStatus = newStatus
	o.updatedAt = at
	o.recordEvent(notification.PaymentFailed, at)
	return nil
}

// MarkRefunded records a refund of a confirmed payment.
func (o *Order) MarkRefunded(at time.Time) error {
	if o.paymentStatus == PaymentRefunded {
		return nil
	}

	newStatus, err := o.paymentStatus.MarkRefunded()
	if err != nil {
		return err
	}

	o.paymentStatus = newStatus
	o.updatedAt = at
	return nil
}

// SetDeliveryFee replaces the delivery fee, recomputing the derived total.
// Called when a rider is assigned or reassigned and the route is re-priced.
// Fails if the order is terminal or the new fee would break the total
// invariant; on failure the order is unchanged.
func (o *Order) SetDeliveryFee(fee kernel.Money, at time.Time) error {
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: cannot reprice %s order", ErrInvalidTransition, o.status)
	}
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%d kobo is negative", fee.Kobo()))
	}

	previous := o.deliveryFee
	o.deliveryFee = fee
	if err := o.validateTotal(); err != nil {
		o.deliveryFee = previous
		return err
	}

	o.updatedAt = at
	return nil
}

// validateTotal enforces the derived-total invariant after money mutations.
func (o *Order) validateTotal() error {
	if o.Total() < 0 {
		return ErrTotalInvariantViolated
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}
	o.businessID = id
	return nil
}

func (o *Order) setBusinessName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("businessName")
	}
	o.businessName = name
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setCustomerPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("customerPhone")
	}
	o.customerPhone = phone
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDiscount(discount kernel.Money) error {
	if discount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("%d kobo is negative", discount.Kobo()))
	}
	o.discount = discount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}
