// Package webhookrepo persists processed webhook tokens. The composite
// primary key on (provider, token) is the compare-and-set that makes webhook
// ingestion idempotent: the first insert wins, every replay collides.
package webhookrepo

import (
	"context"
	"errors"
	"time"

	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"

	"gorm.io/gorm"
)

// WebhookTokenDTO represents one processed provider callback.
type WebhookTokenDTO struct {
	Provider   string `gorm:"type:varchar(64);primaryKey"`
	Token      string `gorm:"type:varchar(128);primaryKey"`
	ReceivedAt time.Time
}

// TableName specifies the database table name for webhook tokens.
func (WebhookTokenDTO) TableName() string {
	return "webhook_tokens"
}

// GormWebhookRepository implements ports.WebhookRepository using GORM.
// Requires the connection to be opened with TranslateError so key collisions
// surface as gorm.ErrDuplicatedKey.
type GormWebhookRepository struct {
	db *gorm.DB
}

// NewGormWebhookRepository creates a new GORM webhook token repository.
func NewGormWebhookRepository(db *gorm.DB) *GormWebhookRepository {
	return &GormWebhookRepository{db: db}
}

// Claim atomically records the (provider, token) pair. A replayed token
// returns ports.ErrWebhookAlreadySeen.
func (r *GormWebhookRepository) Claim(
	ctx context.Context,
	provider string,
	token string,
	receivedAt time.Time,
) error {
	if provider == "" {
		return errs.NewValueIsRequiredError("provider")
	}
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	dto := WebhookTokenDTO{
		Provider:   provider,
		Token:      token,
		ReceivedAt: receivedAt,
	}

	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrWebhookAlreadySeen
	}
	return err
}
