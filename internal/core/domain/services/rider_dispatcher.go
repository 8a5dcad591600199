package services

import (
	"errors"
	"fmt"
	"time"

	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/rider"
)

// ErrOrderNotReadyForDelivery is returned when completing a delivery whose
// parent order has not reached out_for_delivery. This guards against marking
// a delivery complete before the business-side acknowledgement.
var ErrOrderNotReadyForDelivery = errors.New("order is not ready for delivery completion")

// RiderDispatcher coordinates the delivery Record, the Rider and the parent
// Order through assignment, movement and completion. It is the only code that
// claims and releases riders, which is how the one-active-delivery-per-rider
// invariant is enforced.
//
// The dispatcher mutates aggregates in memory; command handlers persist them
// within one transaction and serialize per-order access, so operations here
// assume exclusive ownership of their arguments.
type RiderDispatcher struct {
	pricer DeliveryPricer
}

// NewRiderDispatcher creates a dispatcher pricing routes with the given pricer.
func NewRiderDispatcher(pricer DeliveryPricer) RiderDispatcher {
	return RiderDispatcher{pricer: pricer}
}

// Assign claims an available rider for an unassigned (or previously failed)
// delivery, pricing the pickup-to-dropoff route under the tariff. On success
// the delivery is Assigned with frozen distance/fee and a tracking number,
// and the rider is Busy.
//
// Fails with rider.ErrRiderUnavailable or delivery.ErrAlreadyAssigned; on any
// failure both aggregates are left unchanged.
func (d RiderDispatcher) Assign(
	rec *delivery.Record,
	rdr *rider.Rider,
	tariff Tariff,
	at time.Time,
) error {
	if err := errors.Join(rec.Validate(), rdr.Validate()); err != nil {
		return err
	}

	if rec.Status().IsActive() {
		return fmt.Errorf("%w: delivery %s is %s", delivery.ErrAlreadyAssigned, rec.ID(), rec.Status())
	}

	distanceKm, err := rec.Pickup().Point().DistanceKm(rec.Dropoff().Point())
	if err != nil {
		return err
	}

	fee, err := d.pricer.Quote(distanceKm, tariff)
	if err != nil {
		return err
	}

	if err = rdr.Claim(at); err != nil {
		return err
	}

	if err = rec.Assign(rdr.ID(), distanceKm, fee, at); err != nil {
		// Undo the claim so a failed assignment never strands a busy rider.
		_ = rdr.Release(at)
		return err
	}

	return nil
}

// Reassign moves a delivery from its current rider to a new one. Legal only
// while the delivery is Assigned (rider has not picked up) or Failed; the old
// rider, if any, is released and the route is re-priced for the new
// assignment.
func (d RiderDispatcher) Reassign(
	rec *delivery.Record,
	oldRider *rider.Rider,
	newRider *rider.Rider,
	tariff Tariff,
	at time.Time,
) error {
	if err := errors.Join(rec.Validate(), newRider.Validate()); err != nil {
		return err
	}

	if rec.Status() != delivery.Assigned && rec.Status() != delivery.Failed {
		return fmt.Errorf("%w: cannot reassign %s delivery", delivery.ErrInvalidTransition, rec.Status())
	}

	if rec.Status() == delivery.Assigned {
		if err := rec.MarkFailed(at); err != nil {
			return err
		}
	}

	if oldRider != nil {
		if err := oldRider.Validate(); err != nil {
			return err
		}
		if err := oldRider.Release(at); err != nil {
			return err
		}
	}

	return d.Assign(rec, newRider, tariff, at)
}

// UpdateStatus advances the delivery along its own state machine.
//
// The completion edge (in_transit -> delivered) additionally requires the
// parent order to be out_for_delivery; otherwise ErrOrderNotReadyForDelivery
// is returned and nothing changes. Delivered and Failed release the rider.
func (d RiderDispatcher) UpdateStatus(
	rec *delivery.Record,
	ord *order.Order,
	rdr *rider.Rider,
	target delivery.Status,
	at time.Time,
) error {
	if err := errors.Join(rec.Validate(), ord.Validate()); err != nil {
		return err
	}

	switch target {
	case delivery.PickedUp:
		return rec.MarkPickedUp(at)

	case delivery.InTransit:
		return rec.MarkInTransit(at)

	case delivery.Delivered:
		if ord.Status() != order.OutForDelivery {
			return fmt.Errorf("%w: order %s is %s", ErrOrderNotReadyForDelivery, ord.ID(), ord.Status())
		}
		if err := rec.MarkDelivered(at); err != nil {
			return err
		}
		return releaseRider(rdr, at)

	case delivery.Failed:
		if err := rec.MarkFailed(at); err != nil {
			return err
		}
		return releaseRider(rdr, at)

	default:
		return fmt.Errorf("%w: %s -> %s", delivery.ErrInvalidTransition, rec.Status(), target)
	}
}

// ReleaseForCancellation synchronously detaches an active delivery from its
// rider as part of an order cancellation: the delivery is failed and the rider
// returned to available within the caller's transaction, so a rider is never
// left busy against a cancelled order. A non-active delivery is a no-op.
func (d RiderDispatcher) ReleaseForCancellation(
	rec *delivery.Record,
	rdr *rider.Rider,
	at time.Time,
) error {
	if rec == nil || !rec.Status().IsActive() {
		return nil
	}

	if err := rec.MarkFailed(at); err != nil {
		return err
	}
	return releaseRider(rdr, at)
}

func releaseRider(rdr *rider.Rider, at time.Time) error {
	if rdr == nil {
		return nil
	}
	if err := rdr.Validate(); err != nil {
		return err
	}
	return rdr.Release(at)
}
