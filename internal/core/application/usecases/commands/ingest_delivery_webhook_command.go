package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var ErrIngestDeliveryWebhookCommandIsNotConstructed = errors.New(
	"IngestDeliveryWebhookCommand must be created via NewIngestDeliveryWebhookCommand constructor",
)

// IngestDeliveryWebhookCommand represents a logistics provider callback
// reporting delivery progress for a tracking number.
type IngestDeliveryWebhookCommand struct { //nolint:recvcheck //using for validation
	provider       string
	token          string
	trackingNumber string
	target         delivery.Status

	guard guard.ConstructorGuard
}

// NewIngestDeliveryWebhookCommand creates a command from a provider callback.
func NewIngestDeliveryWebhookCommand(
	provider string,
	token string,
	trackingNumber string,
	target delivery.Status,
) (IngestDeliveryWebhookCommand, error) {
	cmd := IngestDeliveryWebhookCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProvider(provider),
		cmd.setToken(token),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setTarget(target),
	); err != nil {
		return IngestDeliveryWebhookCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IngestDeliveryWebhookCommand) Validate() error {
	return c.guard.Validate(ErrIngestDeliveryWebhookCommandIsNotConstructed)
}

// Provider returns the logistics provider's name.
func (c IngestDeliveryWebhookCommand) Provider() string {
	return c.provider
}

// Token returns the provider's idempotency token.
func (c IngestDeliveryWebhookCommand) Token() string {
	return c.token
}

// TrackingNumber returns the delivery's tracking reference.
func (c IngestDeliveryWebhookCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Target returns the reported logistics status.
func (c IngestDeliveryWebhookCommand) Target() delivery.Status {
	return c.target
}

func (c *IngestDeliveryWebhookCommand) setProvider(provider string) error {
	if provider == "" {
		return errs.NewValueIsRequiredError("provider")
	}

	c.provider = provider
	return nil
}

func (c *IngestDeliveryWebhookCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	c.token = token
	return nil
}

func (c *IngestDeliveryWebhookCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *IngestDeliveryWebhookCommand) setTarget(target delivery.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
