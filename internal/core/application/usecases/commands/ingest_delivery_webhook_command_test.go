package commands_test

import (
	"testing"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIngestDeliveryWebhookCommand_Success(t *testing.T) {
	cmd, err := commands.NewIngestDeliveryWebhookCommand(
		"kwik", "cb_77d0a1", "TRK-5E9B21C4", delivery.InTransit)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "kwik", cmd.Provider())
	assert.Equal(t, "cb_77d0a1", cmd.Token())
	assert.Equal(t, "TRK-5E9B21C4", cmd.TrackingNumber())
	assert.Equal(t, delivery.InTransit, cmd.Target())
}

func TestNewIngestDeliveryWebhookCommand_ValidationErrors(t *testing.T) {
	t.Run("should reject empty provider", func(t *testing.T) {
		_, err := commands.NewIngestDeliveryWebhookCommand("", "cb_77d0a1", "TRK-5E9B21C4", delivery.InTransit)
		require.Error(t, err)
	})

	t.Run("should reject empty token", func(t *testing.T) {
		_, err := commands.NewIngestDeliveryWebhookCommand("kwik", "", "TRK-5E9B21C4", delivery.InTransit)
		require.Error(t, err)
	})

	t.Run("should reject empty tracking number", func(t *testing.T) {
		_, err := commands.NewIngestDeliveryWebhookCommand("kwik", "cb_77d0a1", "", delivery.InTransit)
		require.Error(t, err)
	})

	t.Run("should reject unknown target status", func(t *testing.T) {
		_, err := commands.NewIngestDeliveryWebhookCommand("kwik", "cb_77d0a1", "TRK-5E9B21C4", delivery.Unknown)
		require.Error(t, err)
	})
}

func TestIngestDeliveryWebhookCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.IngestDeliveryWebhookCommand // zero value, not constructed via constructor

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrIngestDeliveryWebhookCommandIsNotConstructed)
}
