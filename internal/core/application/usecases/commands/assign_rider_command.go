package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand represents a request to bind an available rider to a
// delivery, pricing the route in the process.
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	riderID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign a rider to a delivery.
func NewAssignRiderCommand(deliveryID kernel.UUID, riderID kernel.UUID) (AssignRiderCommand, error) {
	cmd := AssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setRiderID(riderID),
	); err != nil {
		return AssignRiderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// DeliveryID returns the delivery to assign.
func (c AssignRiderCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// RiderID returns the rider to claim.
func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c *AssignRiderCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AssignRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
