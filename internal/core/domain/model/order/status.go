package order

import (
	"fmt"

	"fulfilment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow the
// fulfilment workflow from checkout to handover.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> OutForDelivery ──> Delivered
//	   │            │             │           │              │
//	   └────────────┴─────────────┴───────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no further transition succeeds.
// Cancellation is permitted from every non-terminal state and is irreversible.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created,
	// awaiting payment confirmation.
	Pending

	// Confirmed indicates payment is confirmed and the business accepted the order.
	Confirmed

	// Preparing indicates the business is putting the order together.
	Preparing

	// Ready indicates the order is packed and waiting for rider pickup.
	Ready

	// OutForDelivery indicates a rider is carrying the order to the customer.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was abandoned by the customer or the
	// business. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		Ready:          "ready",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// transitions is the canonical transition table. A status maps to the set of
// statuses it may move to; terminal statuses map to nothing.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled},
		Confirmed:      {Preparing, Cancelled},
		Preparing:      {Ready, Cancelled},
		Ready:          {OutForDelivery, Cancelled},
		OutForDelivery: {Delivered, Cancelled},
		Delivered:      {},
		Cancelled:      {},
	}
}

// StatusFromString parses the wire representation of a status
// (e.g. "out_for_delivery"). Unrecognized strings are rejected.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("pending", "out_for_delivery", ...).
// Implements fmt.Stringer. Safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the transition table permits moving from the
// receiver to target. A status can never "transition" to itself through this
// check; callers treat same-status requests as no-ops before consulting it.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition, returning the new status.
//
// Returns ErrInvalidTransition (wrapped with the offending pair) when the
// transition table does not permit the move, including any transition out of
// a terminal status.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}

	return target, nil
}
