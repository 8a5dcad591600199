package services

import (
	"fmt"

	"fulfilment/internal/core/domain/model/notification"
)

// renderer formats one message template from its typed parameters.
type renderer func(p notification.TemplateParams) string

// MessageCatalog is the closed, versioned set of customer message templates,
// keyed by event type. Each template is a plain formatting function over the
// fixed TemplateParams schema - free-form interpolation of user content into
// outbound messages is impossible by construction.
type MessageCatalog struct {
	templates map[notification.EventType]renderer
}

// NewMessageCatalog creates the catalog with every event type bound to its
// template. The catalog is immutable after construction.
func NewMessageCatalog() MessageCatalog {
	return MessageCatalog{
		templates: map[notification.EventType]renderer{
			notification.OrderReceived: func(p notification.TemplateParams) string {
				return fmt.Sprintf(
					"Hello! %s has received your order %s totalling %s. We'll confirm it shortly.",
					p.BusinessName, p.OrderNumber, p.Amount)
			},
			notification.OrderConfirmed: func(p notification.TemplateParams) string {
				return fmt.Sprintf(
					"Your order %s has been confirmed by %s. We'll let you know when it's being prepared.",
					p.OrderNumber, p.BusinessName)
			},
			notification.OrderPreparing: func(p notification.TemplateParams) string {
				return fmt.Sprintf("%s is now preparing your order %s.",
					p.BusinessName, p.OrderNumber)
			},
			notification.OrderReady: func(p notification.TemplateParams) string {
				return fmt.Sprintf("Your order %s is packed and ready. A rider will pick it up soon.",
					p.OrderNumber)
			},
			notification.RiderAssigned: func(p notification.TemplateParams) string {
				return fmt.Sprintf(
					"%s (%s) will deliver your order %s. Track it with %s.",
					p.RiderName, p.RiderPhone, p.OrderNumber, p.TrackingNumber)
			},
			notification.OutForDelivery: func(p notification.TemplateParams) string {
				msg := fmt.Sprintf("Your order %s is on its way", p.OrderNumber)
				if p.RiderName != "" {
					msg = fmt.Sprintf("%s with %s (%s)", msg, p.RiderName, p.RiderPhone)
				}
				msg += "."
				if p.ETA != "" {
					msg = fmt.Sprintf("%s Estimated arrival: %s.", msg, p.ETA)
				}
				return msg
			},
			notification.Delivered: func(p notification.TemplateParams) string {
				return fmt.Sprintf("Your order %s has been delivered. Thank you for shopping with %s!",
					p.OrderNumber, p.BusinessName)
			},
			notification.Cancelled: func(p notification.TemplateParams) string {
				if p.Reason != "" {
					return fmt.Sprintf("Your order %s was cancelled: %s.", p.OrderNumber, p.Reason)
				}
				return fmt.Sprintf("Your order %s was cancelled.", p.OrderNumber)
			},
			notification.PaymentReceived: func(p notification.TemplateParams) string {
				return fmt.Sprintf("We received your payment of %s for order %s.",
					p.Amount, p.OrderNumber)
			},
			notification.PaymentFailed: func(p notification.TemplateParams) string {
				return fmt.Sprintf(
					"Your payment for order %s didn't go through. Please try again or use another method.",
					p.OrderNumber)
			},
		},
	}
}

// Render formats the message for the given event type. Event types outside the
// catalog are rejected, which keeps the template set closed.
func (c MessageCatalog) Render(
	eventType notification.EventType,
	params notification.TemplateParams,
) (string, error) {
	if err := eventType.Validate(); err != nil {
		return "", err
	}

	tpl, ok := c.templates[eventType]
	if !ok {
		return "", fmt.Errorf("no template registered for event type %s", eventType)
	}

	return tpl(params), nil
}
