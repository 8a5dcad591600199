package delivery

import (
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

// ErrWaypointIsNotConstructed is returned when a Waypoint instance was not
// created through the NewWaypoint constructor.
var ErrWaypointIsNotConstructed = errors.New("Waypoint must be created via NewWaypoint constructor")

// Waypoint is a delivery endpoint: a validated geographic coordinate plus the
// human-readable street address a rider navigates to.
type Waypoint struct { //nolint:recvcheck //using for validation
	point   kernel.GeoPoint
	address string

	guard guard.ConstructorGuard
}

// NewWaypoint creates a Waypoint from a constructed GeoPoint and a non-empty
// street address.
func NewWaypoint(point kernel.GeoPoint, address string) (Waypoint, error) {
	w := Waypoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(w.setPoint(point), w.setAddress(address)); err != nil {
		return Waypoint{}, err
	}

	return w, nil
}

// Validate ensures the Waypoint was created through NewWaypoint.
func (w Waypoint) Validate() error {
	return w.guard.Validate(ErrWaypointIsNotConstructed)
}

// Point returns the geographic coordinate.
func (w Waypoint) Point() kernel.GeoPoint {
	return w.point
}

// Address returns the street address.
func (w Waypoint) Address() string {
	return w.address
}

func (w *Waypoint) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	w.point = point
	return nil
}

func (w *Waypoint) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	w.address = address
	return nil
}
