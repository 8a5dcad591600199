package order

import (
	"fmt"

	"fulfilment/internal/pkg/errs"
)

// PaymentStatus tracks the payment axis of an order, independent of the
// fulfilment Status. A confirmed order is normally paid, but the two axes move
// on their own rules: a refund can land after delivery, and a failed payment
// leaves the order pending for another attempt.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means no successful payment has been recorded yet.
	PaymentPending

	// PaymentPaid means the payment provider confirmed the charge.
	PaymentPaid

	// PaymentFailed means the last payment attempt was declined.
	PaymentFailed

	// PaymentRefunded means a confirmed payment was returned to the customer.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "Unknown",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentFailed:   "failed",
		PaymentRefunded: "refunded",
	}
}

// PaymentStatusFromString parses a payment status from its wire name.
// Used when reconstructing orders from persistence or parsing webhooks.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if name == s && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks the PaymentStatus is one of the defined values.
func (s PaymentStatus) Validate() error {
	if s < PaymentPending || s > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire name of the payment status.
// Implements fmt.Stringer.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// MarkPaid transitions to PaymentPaid. A retried charge after a failure is
// allowed; refunded payments are final.
func (s PaymentStatus) MarkPaid() (PaymentStatus, error) {
	if s == PaymentPaid {
		return PaymentPaid, nil
	}
	if s != PaymentPending && s != PaymentFailed {
		return PaymentUnknown, fmt.Errorf("%w: payment %s -> %s",
			ErrInvalidTransition, s, PaymentPaid)
	}
	return PaymentPaid, nil
}

// MarkFailed transitions to PaymentFailed. Only a pending payment can fail.
func (s PaymentStatus) MarkFailed() (PaymentStatus, error) {
	if s == PaymentFailed {
		return PaymentFailed, nil
	}
	if s != PaymentPending {
		return PaymentUnknown, fmt.Errorf("%w: payment %s -> %s",
			ErrInvalidTransition, s, PaymentFailed)
	}
	return PaymentFailed, nil
}

// MarkRefunded transitions to PaymentRefunded. Only a paid order can be refunded.
func (s PaymentStatus) MarkRefunded() (PaymentStatus, error) {
	if s == PaymentRefunded {
		return PaymentRefunded, nil
	}
	if s != PaymentPaid {
		return PaymentUnknown, fmt.Errorf("%w: payment %s -> %s",
			ErrInvalidTransition, s, PaymentRefunded)
	}
	return PaymentRefunded, nil
}
