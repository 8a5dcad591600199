package notification_test

import (
	"testing"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(t *testing.T) *notification.Event {
	t.Helper()

	event, err := notification.NewEvent(
		kernel.NewUUID(), kernel.NewUUID(), notification.OrderConfirmed,
		"+2348012345678", notification.TemplateParams{OrderNumber: "ORD-4F2A91C0"},
		time.Now().UTC())
	require.NoError(t, err)

	return event
}

func TestNewEvent(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should create pending event due immediately", func(t *testing.T) {
		orderID := kernel.NewUUID()

		event, err := notification.NewEvent(
			kernel.NewUUID(), orderID, notification.OrderConfirmed,
			"+2348012345678", notification.TemplateParams{}, now)

		require.NoError(t, err)
		require.NoError(t, event.Validate())
		assert.True(t, event.OrderID().IsEqual(orderID))
		assert.False(t, event.IsSent())
		assert.False(t, event.IsAbandoned())
		assert.Zero(t, event.Attempts())
		assert.True(t, event.IsDue(now))
		assert.Equal(t, notification.DedupeKey(orderID, notification.OrderConfirmed), event.DedupeKey())
	})

	t.Run("should reject empty recipient phone", func(t *testing.T) {
		_, err := notification.NewEvent(
			kernel.NewUUID(), kernel.NewUUID(), notification.OrderConfirmed,
			"", notification.TemplateParams{}, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "recipientPhone")
	})

	t.Run("should reject unknown event type", func(t *testing.T) {
		_, err := notification.NewEvent(
			kernel.NewUUID(), kernel.NewUUID(), notification.UnknownEvent,
			"+2348012345678", notification.TemplateParams{}, now)

		require.Error(t, err)
	})
}

func TestDedupeKey(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("should be stable for the same pair", func(t *testing.T) {
		first := notification.DedupeKey(orderID, notification.OrderConfirmed)
		second := notification.DedupeKey(orderID, notification.OrderConfirmed)

		assert.Equal(t, first, second)
		assert.Len(t, first, 64) // hex encoded sha256
	})

	t.Run("should differ per event type", func(t *testing.T) {
		confirmed := notification.DedupeKey(orderID, notification.OrderConfirmed)
		delivered := notification.DedupeKey(orderID, notification.Delivered)

		assert.NotEqual(t, confirmed, delivered)
	})

	t.Run("should differ per order", func(t *testing.T) {
		a := notification.DedupeKey(kernel.NewUUID(), notification.OrderConfirmed)
		b := notification.DedupeKey(kernel.NewUUID(), notification.OrderConfirmed)

		assert.NotEqual(t, a, b)
	})
}

func TestEvent_MarkSent(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should record delivery once", func(t *testing.T) {
		event := newEvent(t)

		require.NoError(t, event.MarkSent(now))

		assert.True(t, event.IsSent())
		require.NotNil(t, event.SentAt())
		assert.False(t, event.IsDue(now))
	})

	t.Run("should reject a second send", func(t *testing.T) {
		event := newEvent(t)
		require.NoError(t, event.MarkSent(now))

		require.ErrorIs(t, event.MarkSent(now), notification.ErrEventAlreadySent)
	})

	t.Run("should reject failure recording after send", func(t *testing.T) {
		event := newEvent(t)
		require.NoError(t, event.MarkSent(now))

		require.ErrorIs(t, event.RecordFailure(now, false), notification.ErrEventAlreadySent)
	})
}

func TestEvent_RecordFailure(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should schedule retries with doubling backoff", func(t *testing.T) {
		event := newEvent(t)

		delays := []time.Duration{30 * time.Second, 60 * time.Second, 120 * time.Second, 240 * time.Second}
		for i, want := range delays {
			require.NoError(t, event.RecordFailure(now, false))
			assert.Equal(t, i+1, event.Attempts())
			assert.False(t, event.IsAbandoned())
			assert.Equal(t, now.Add(want), event.NextAttemptAt())
			assert.False(t, event.IsDue(now))
			assert.True(t, event.IsDue(now.Add(want)))
		}
	})

	t.Run("should abandon after max attempts", func(t *testing.T) {
		event := newEvent(t)

		for range notification.MaxSendAttempts {
			require.NoError(t, event.RecordFailure(now, false))
		}

		assert.True(t, event.IsAbandoned())
		assert.False(t, event.IsSent())
		assert.False(t, event.IsDue(now.Add(time.Hour)))
		require.ErrorIs(t, event.RecordFailure(now, false), notification.ErrEventAbandoned)
	})

	t.Run("should abandon immediately on permanent rejection", func(t *testing.T) {
		event := newEvent(t)

		require.NoError(t, event.RecordFailure(now, true))

		assert.True(t, event.IsAbandoned())
		assert.Equal(t, 1, event.Attempts())
	})
}

func TestRestoreEvent(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should restore preserving delivery state", func(t *testing.T) {
		orderID := kernel.NewUUID()
		sentAt := now.Add(-time.Minute)

		event, err := notification.RestoreEvent(
			kernel.NewUUID(), orderID, notification.Delivered,
			notification.DedupeKey(orderID, notification.Delivered),
			"+2348012345678", notification.TemplateParams{}, &sentAt,
			2, now, false, now.Add(-time.Hour))

		require.NoError(t, err)
		assert.True(t, event.IsSent())
		assert.Equal(t, 2, event.Attempts())
	})

	t.Run("should reject empty dedupe key", func(t *testing.T) {
		_, err := notification.RestoreEvent(
			kernel.NewUUID(), kernel.NewUUID(), notification.Delivered,
			"", "+2348012345678", notification.TemplateParams{}, nil,
			0, now, false, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "dedupeKey")
	})

	t.Run("should reject negative attempts", func(t *testing.T) {
		orderID := kernel.NewUUID()

		_, err := notification.RestoreEvent(
			kernel.NewUUID(), orderID, notification.Delivered,
			notification.DedupeKey(orderID, notification.Delivered),
			"+2348012345678", notification.TemplateParams{}, nil,
			-1, now, false, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "attempts")
	})
}

func TestEventTypeFromString(t *testing.T) {
	for _, eventType := range []notification.EventType{
		notification.OrderReceived, notification.OrderConfirmed,
		notification.Delivered, notification.Cancelled,
		notification.PaymentReceived, notification.PaymentFailed,
	} {
		got, err := notification.EventTypeFromString(eventType.String())
		require.NoError(t, err, eventType.String())
		assert.Equal(t, eventType, got)
	}

	_, err := notification.EventTypeFromString("OrderShipped")
	require.Error(t, err)
}
