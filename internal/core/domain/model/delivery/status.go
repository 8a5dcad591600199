package delivery

import (
	"fmt"

	"fulfilment/internal/pkg/errs"
)

// Status represents the logistics state of a delivery record. It is a second
// state machine, independent of the order status but constrained by it: a
// delivery may only complete while its order is out for delivery.
//
// State transitions:
//
//	Unassigned ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	                  │   ▲        │             │
//	                  ▼   │        ▼             ▼
//	                  Failed <─────┴─────────────┘
//	                 (re-assignment allowed from Failed)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Unassigned means no rider holds the delivery yet.
	Unassigned

	// Assigned means a rider accepted the delivery and is heading to pickup.
	Assigned

	// PickedUp means the rider collected the package from the business.
	PickedUp

	// InTransit means the rider is moving toward the customer.
	InTransit

	// Delivered means the package reached the customer. Terminal.
	Delivered

	// Failed means the attempt was abandoned (rider issue, cancellation).
	// A failed delivery may be retried through re-assignment.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Unassigned: "unassigned",
		Assigned:   "assigned",
		PickedUp:   "picked_up",
		InTransit:  "in_transit",
		Delivered:  "delivered",
		Failed:     "failed",
	}
}

func transitions() map[Status][]Status {
	return map[Status][]Status{
		Unassigned: {Assigned},
		Assigned:   {PickedUp, Failed},
		PickedUp:   {InTransit, Failed},
		InTransit:  {Delivered, Failed},
		Delivered:  {},
		Failed:     {Assigned},
	}
}

// StatusFromString parses the wire representation of a delivery status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid delivery status", s))
}

// Validate checks the Status is one of the defined logistics states.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether a rider is currently bound to the delivery.
// The rider single-assignment invariant counts these statuses.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}

// CanTransitionTo reports whether the transition table permits moving from the
// receiver to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition, returning the new status.
// Illegal moves fail with ErrInvalidTransition.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}

	return target, nil
}
