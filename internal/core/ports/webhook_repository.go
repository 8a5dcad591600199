package ports

import (
	"context"
	"errors"
	"time"
)

// ErrWebhookAlreadySeen is returned by Claim when the (provider, token)
// pair was already recorded by an earlier request.
var ErrWebhookAlreadySeen = errors.New("webhook already seen")

// WebhookRepository records processed webhook tokens so that provider
// retries become no-ops. Claim is the compare-and-set: the first caller for
// a (provider, token) pair wins, any later caller gets ErrWebhookAlreadySeen.
type WebhookRepository interface {
	// Claim atomically records the (provider, token) pair. Returns
	// ErrWebhookAlreadySeen when the pair was recorded before.
	Claim(ctx context.Context, provider string, token string, receivedAt time.Time) error
}
