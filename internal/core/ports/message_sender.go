package ports

import (
	"context"
	"errors"
)

// ErrMessageRejected signals a permanent delivery failure: the channel
// refused the message and a retry cannot succeed (bad recipient, template
// rejected). The notification is abandoned instead of rescheduled.
var ErrMessageRejected = errors.New("message rejected by channel")

// MessageSender delivers a rendered notification text to a customer phone
// number over an out-of-band channel such as WhatsApp.
type MessageSender interface {
	Send(ctx context.Context, phone string, text string) error
}
