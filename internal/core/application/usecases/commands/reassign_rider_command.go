package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/guard"
)

var ErrReassignRiderCommandIsNotConstructed = errors.New(
	"ReassignRiderCommand must be created via NewReassignRiderCommand constructor",
)

// ReassignRiderCommand represents a request to move a delivery from its
// current rider to a new one, re-pricing the route.
type ReassignRiderCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	newRiderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignRiderCommand creates a command to reassign a delivery.
func NewReassignRiderCommand(
	deliveryID kernel.UUID,
	newRiderID kernel.UUID,
) (ReassignRiderCommand, error) {
	cmd := ReassignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setNewRiderID(newRiderID),
	); err != nil {
		return ReassignRiderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignRiderCommand) Validate() error {
	return c.guard.Validate(ErrReassignRiderCommandIsNotConstructed)
}

// DeliveryID returns the delivery to reassign.
func (c ReassignRiderCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// NewRiderID returns the replacement rider.
func (c ReassignRiderCommand) NewRiderID() kernel.UUID {
	return c.newRiderID
}

func (c *ReassignRiderCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ReassignRiderCommand) setNewRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.newRiderID = riderID
	return nil
}
