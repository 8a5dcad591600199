package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var ErrIngestPaymentWebhookCommandIsNotConstructed = errors.New(
	"IngestPaymentWebhookCommand must be created via NewIngestPaymentWebhookCommand constructor",
)

// PaymentOutcome is the closed set of results a payment provider may report.
type PaymentOutcome string

const (
	PaymentOutcomePaid     PaymentOutcome = "paid"
	PaymentOutcomeFailed   PaymentOutcome = "failed"
	PaymentOutcomeRefunded PaymentOutcome = "refunded"
)

// Validate rejects outcomes outside the closed set.
func (o PaymentOutcome) Validate() error {
	switch o {
	case PaymentOutcomePaid, PaymentOutcomeFailed, PaymentOutcomeRefunded:
		return nil
	default:
		return errs.NewValueIsInvalidError("outcome")
	}
}

// IngestPaymentWebhookCommand represents a payment provider callback. The
// token is the provider's idempotency reference: replays of the same token
// are acknowledged without reprocessing.
type IngestPaymentWebhookCommand struct { //nolint:recvcheck //using for validation
	provider string
	token    string
	orderID  kernel.UUID
	outcome  PaymentOutcome

	guard guard.ConstructorGuard
}

// NewIngestPaymentWebhookCommand creates a command from a provider callback.
func NewIngestPaymentWebhookCommand(
	provider string,
	token string,
	orderID kernel.UUID,
	outcome PaymentOutcome,
) (IngestPaymentWebhookCommand, error) {
	cmd := IngestPaymentWebhookCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProvider(provider),
		cmd.setToken(token),
		cmd.setOrderID(orderID),
		cmd.setOutcome(outcome),
	); err != nil {
		return IngestPaymentWebhookCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IngestPaymentWebhookCommand) Validate() error {
	return c.guard.Validate(ErrIngestPaymentWebhookCommandIsNotConstructed)
}

// Provider returns the payment provider's name.
func (c IngestPaymentWebhookCommand) Provider() string {
	return c.provider
}

// Token returns the provider's idempotency token.
func (c IngestPaymentWebhookCommand) Token() string {
	return c.token
}

// OrderID returns the order the payment belongs to.
func (c IngestPaymentWebhookCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Outcome returns the reported payment result.
func (c IngestPaymentWebhookCommand) Outcome() PaymentOutcome {
	return c.outcome
}

func (c *IngestPaymentWebhookCommand) setProvider(provider string) error {
	if provider == "" {
		return errs.NewValueIsRequiredError("provider")
	}

	c.provider = provider
	return nil
}

func (c *IngestPaymentWebhookCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	c.token = token
	return nil
}

func (c *IngestPaymentWebhookCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *IngestPaymentWebhookCommand) setOutcome(outcome PaymentOutcome) error {
	if err := outcome.Validate(); err != nil {
		return err
	}

	c.outcome = outcome
	return nil
}
