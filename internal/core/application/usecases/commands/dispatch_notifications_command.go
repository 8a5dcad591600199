package commands

import (
	"errors"

	"fulfilment/internal/pkg/guard"
)

// DispatchNotificationsCommand triggers a send pass over due notification
// events: unsent events past their scheduled attempt time are rendered and
// pushed to the message channel.
//
// Example:
//
//	cmd := NewDispatchNotificationsCommand()
//	handler := NewDispatchNotificationsCommandHandler(uowFactory, catalog, sender, logger)
//
//	// Run periodically to drain the outbox
//	ticker := time.NewTicker(15 * time.Second)
//	for range ticker.C {
//	    if err := handler.Handle(ctx, cmd); err != nil {
//	        log.Printf("Notification pass failed: %v", err)
//	    }
//	}
type DispatchNotificationsCommand struct {
	guard guard.ConstructorGuard
}

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// NewDispatchNotificationsCommand creates a command to trigger a send pass.
// This is a parameterless command that processes all due events.
func NewDispatchNotificationsCommand() DispatchNotificationsCommand {
	command := DispatchNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchNotificationsCommandIsNotConstructed if validation fails.
func (c *DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}
