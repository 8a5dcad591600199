package commands_test

import (
	"testing"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateDeliveryStatusCommand_Success(t *testing.T) {
	deliveryID := kernel.NewUUID()

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, delivery.PickedUp)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, deliveryID, cmd.DeliveryID())
	assert.Equal(t, delivery.PickedUp, cmd.Target())
}

func TestNewUpdateDeliveryStatusCommand_ValidationErrors(t *testing.T) {
	t.Run("should reject empty delivery ID", func(t *testing.T) {
		_, err := commands.NewUpdateDeliveryStatusCommand(kernel.UUID{}, delivery.PickedUp)
		require.Error(t, err)
	})

	t.Run("should reject unknown target status", func(t *testing.T) {
		_, err := commands.NewUpdateDeliveryStatusCommand(kernel.NewUUID(), delivery.Unknown)
		require.Error(t, err)
	})
}

func TestUpdateDeliveryStatusCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.UpdateDeliveryStatusCommand // zero value, not constructed via constructor

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrUpdateDeliveryStatusCommandIsNotConstructed)
}
