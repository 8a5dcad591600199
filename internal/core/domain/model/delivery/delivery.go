package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Record instance was not
	// created through the NewRecord or RestoreRecord constructors.
	ErrDeliveryIsNotConstructed = errors.New(
		"delivery Record must be created via NewRecord or RestoreRecord constructor")

	// ErrInvalidTransition is returned when a requested delivery state change
	// is not permitted by the transition table.
	ErrInvalidTransition = errors.New("invalid delivery transition")

	// ErrAlreadyAssigned is returned when assigning a rider to a delivery that
	// already holds one.
	ErrAlreadyAssigned = errors.New("delivery is already assigned")
)

// Record is the logistics aggregate tracking rider assignment and physical
// movement for one order. It holds a non-owning back reference to its order
// and a non-owning reference to the assigned rider by id.
//
// Distance and fee are computed once at assignment time and frozen;
// re-assignment recomputes them. The tracking number is generated at first
// assignment and never changes afterwards.
type Record struct {
	id             kernel.UUID
	orderID        kernel.UUID
	riderID        *kernel.UUID
	pickup         Waypoint
	dropoff        Waypoint
	distanceKm     float64
	fee            kernel.Money
	status         Status
	trackingNumber string
	createdAt      time.Time
	updatedAt      time.Time

	guard guard.ConstructorGuard
}

// NewRecord creates an unassigned delivery record for an order with its
// pickup and dropoff endpoints. Distance, fee and tracking number are set
// later, when a rider is assigned.
func NewRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	pickup Waypoint,
	dropoff Waypoint,
	now time.Time,
) (*Record, error) {
	r := &Record{
		status:    Unassigned,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setPickup(pickup),
		r.setDropoff(dropoff),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRecord reconstructs a delivery Record from persistent storage.
func RestoreRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	riderID *kernel.UUID,
	pickup Waypoint,
	dropoff Waypoint,
	distanceKm float64,
	fee kernel.Money,
	status Status,
	trackingNumber string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Record, error) {
	r := &Record{
		distanceKm:     distanceKm,
		fee:            fee,
		trackingNumber: trackingNumber,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setPickup(pickup),
		r.setDropoff(dropoff),
		r.setStatus(status),
	); err != nil {
		return nil, err
	}

	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
		cp := *riderID
		r.riderID = &cp
	}

	if status.IsActive() && r.riderID == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("riderID",
			fmt.Errorf("%s delivery must have a rider", status))
	}

	return r, nil
}

// NewTrackingNumber generates a stable opaque tracking number. Numbers derive
// from fresh UUIDs, so they are never reused.
func NewTrackingNumber() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "TRK-" + strings.ToUpper(raw[:12])
}

// Validate ensures the Record was created through a constructor.
func (r *Record) Validate() error {
	if r == nil {
		return ErrDeliveryIsNotConstructed
	}
	return r.guard.Validate(ErrDeliveryIsNotConstructed)
}

// ID returns the delivery's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// OrderID returns the order this delivery fulfils.
func (r *Record) OrderID() kernel.UUID {
	return r.orderID
}

// RiderID returns the assigned rider's id, or nil while unassigned.
func (r *Record) RiderID() *kernel.UUID {
	return r.riderID
}

// Pickup returns the pickup endpoint.
func (r *Record) Pickup() Waypoint {
	return r.pickup
}

// Dropoff returns the customer endpoint.
func (r *Record) Dropoff() Waypoint {
	return r.dropoff
}

// DistanceKm returns the distance priced at the last assignment.
func (r *Record) DistanceKm() float64 {
	return r.distanceKm
}

// Fee returns the delivery fee priced at the last assignment.
func (r *Record) Fee() kernel.Money {
	return r.fee
}

// Status returns the current logistics status.
func (r *Record) Status() Status {
	return r.status
}

// TrackingNumber returns the opaque tracking number, or "" before first assignment.
func (r *Record) TrackingNumber() string {
	return r.trackingNumber
}

// CreatedAt returns when the delivery record was created.
func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the delivery was last mutated.
func (r *Record) UpdatedAt() time.Time {
	return r.updatedAt
}

// Assign binds a rider to the delivery and freezes the priced distance and
// fee. Legal from Unassigned (first assignment) and Failed (retry); an
// Assigned/PickedUp/InTransit delivery fails with ErrAlreadyAssigned, a
// Delivered one with ErrInvalidTransition.
//
// The tracking number is generated on first assignment and kept on
// re-assignment.
func (r *Record) Assign(riderID kernel.UUID, distanceKm float64, fee kernel.Money, at time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}

	if r.status.IsActive() {
		return fmt.Errorf("%w: rider %s holds it", ErrAlreadyAssigned, r.riderID)
	}

	newStatus, err := r.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	r.status = newStatus
	rid := riderID
	r.riderID = &rid
	r.distanceKm = distanceKm
	r.fee = fee
	if r.trackingNumber == "" {
		r.trackingNumber = NewTrackingNumber()
	}
	r.updatedAt = at
	return nil
}

// MarkPickedUp records the rider collecting the package.
func (r *Record) MarkPickedUp(at time.Time) error {
	return r.transition(PickedUp, at)
}

// MarkInTransit records the rider moving toward the customer.
func (r *Record) MarkInTransit(at time.Time) error {
	return r.transition(InTransit, at)
}

// MarkDelivered records handover to the customer. The cross-aggregate guard -
// the parent order must be out for delivery - is enforced by the dispatcher
// before this is called.
func (r *Record) MarkDelivered(at time.Time) error {
	return r.transition(Delivered, at)
}

// MarkFailed abandons the current attempt. The rider reference is kept for
// history; the dispatcher releases the rider aggregate separately. A failed
// delivery may be retried through Assign.
func (r *Record) MarkFailed(at time.Time) error {
	return r.transition(Failed, at)
}

func (r *Record) transition(target Status, at time.Time) error {
	newStatus, err := r.status.TransitionTo(target)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.updatedAt = at
	return nil
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	r.orderID = orderID
	return nil
}

func (r *Record) setPickup(pickup Waypoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	r.pickup = pickup
	return nil
}

func (r *Record) setDropoff(dropoff Waypoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	r.dropoff = dropoff
	return nil
}

func (r *Record) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
