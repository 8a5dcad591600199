package rider

import (
	"errors"
	"fmt"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var (
	// ErrRiderIsNotConstructed is returned when a Rider instance was not
	// created through the NewRider or RestoreRider constructors.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider constructor")

	// ErrRiderUnavailable is returned when claiming a rider who is busy or
	// offline. The caller's delivery/rider state is left unchanged.
	ErrRiderUnavailable = errors.New("rider is unavailable")
)

// Rider is a delivery rider and their availability. The rider entity holds no
// back reference to deliveries: the invariant that a rider carries at most one
// active delivery is enforced by the dispatcher, which is the only code that
// claims and releases riders.
type Rider struct {
	id              kernel.UUID
	name            string
	phone           string
	status          Status
	currentLocation *kernel.GeoPoint
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// NewRider creates an Available rider with no known location.
func NewRider(id kernel.UUID, name string, phone string, now time.Time) (*Rider, error) {
	r := &Rider{
		status:    Available,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider reconstructs a Rider from persistent storage.
func RestoreRider(
	id kernel.UUID,
	name string,
	phone string,
	status Status,
	currentLocation *kernel.GeoPoint,
	updatedAt time.Time,
) (*Rider, error) {
	r := &Rider{
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setPhone(phone),
		r.setStatus(status),
	); err != nil {
		return nil, err
	}

	if currentLocation != nil {
		if err := currentLocation.Validate(); err != nil {
			return nil, err
		}
		loc := *currentLocation
		r.currentLocation = &loc
	}

	return r, nil
}

// Validate ensures the Rider was created through a constructor.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Name returns the rider's display name.
func (r *Rider) Name() string {
	return r.name
}

// Phone returns the rider's contact number, shared with customers in
// out-for-delivery notifications.
func (r *Rider) Phone() string {
	return r.phone
}

// Status returns the rider's availability.
func (r *Rider) Status() Status {
	return r.status
}

// CurrentLocation returns the last known location, or nil if never reported.
func (r *Rider) CurrentLocation() *kernel.GeoPoint {
	return r.currentLocation
}

// UpdatedAt returns when the rider was last mutated.
func (r *Rider) UpdatedAt() time.Time {
	return r.updatedAt
}

// Claim marks an available rider Busy for a new delivery. A busy or offline
// rider fails with ErrRiderUnavailable and nothing changes.
func (r *Rider) Claim(at time.Time) error {
	if r.status != Available {
		return fmt.Errorf("%w: rider %s is %s", ErrRiderUnavailable, r.id, r.status)
	}

	r.status = Busy
	r.updatedAt = at
	return nil
}

// Release returns a busy rider to Available, typically after the delivery
// completes, fails or its order is cancelled. Releasing an already-available
// rider is a no-op so cancellation paths stay idempotent.
func (r *Rider) Release(at time.Time) error {
	if r.status == Offline {
		return fmt.Errorf("%w: rider %s is %s", ErrRiderUnavailable, r.id, r.status)
	}
	if r.status == Available {
		return nil
	}

	r.status = Available
	r.updatedAt = at
	return nil
}

// GoOffline takes an available rider off shift. A busy rider must finish or
// fail their delivery first.
func (r *Rider) GoOffline(at time.Time) error {
	if r.status == Busy {
		return fmt.Errorf("%w: rider %s holds an active delivery", ErrRiderUnavailable, r.id)
	}

	r.status = Offline
	r.updatedAt = at
	return nil
}

// GoOnline brings an offline rider back to Available.
func (r *Rider) GoOnline(at time.Time) error {
	if r.status == Busy {
		return nil
	}

	r.status = Available
	r.updatedAt = at
	return nil
}

// ReportLocation updates the rider's last known position.
func (r *Rider) ReportLocation(point kernel.GeoPoint, at time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}

	r.currentLocation = &point
	r.updatedAt = at
	return nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Rider) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	r.phone = phone
	return nil
}

func (r *Rider) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
