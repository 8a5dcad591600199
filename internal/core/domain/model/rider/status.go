package rider

import (
	"fmt"

	"fulfilment/internal/pkg/errs"
)

// Status represents a rider's availability for new deliveries.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Available means the rider can take a delivery.
	Available

	// Busy means the rider holds an active delivery.
	Busy

	// Offline means the rider is not working.
	Offline
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Available: "available",
		Busy:      "busy",
		Offline:   "offline",
	}
}

// StatusFromString parses a rider status from its wire name.
// Used when reconstructing riders from persistence.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid rider status", s))
}

// Validate checks the Status is one of the defined availability states.
func (s Status) Validate() error {
	if s < Available || s > Offline {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid rider status", s))
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
