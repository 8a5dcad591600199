package commands_test

import (
	"testing"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignRiderCommand_Success(t *testing.T) {
	deliveryID := kernel.NewUUID()
	riderID := kernel.NewUUID()

	cmd, err := commands.NewAssignRiderCommand(deliveryID, riderID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, deliveryID, cmd.DeliveryID())
	assert.Equal(t, riderID, cmd.RiderID())
}

func TestNewAssignRiderCommand_ValidationErrors(t *testing.T) {
	t.Run("should reject empty delivery ID", func(t *testing.T) {
		_, err := commands.NewAssignRiderCommand(kernel.UUID{}, kernel.NewUUID())
		require.Error(t, err)
	})

	t.Run("should reject empty rider ID", func(t *testing.T) {
		_, err := commands.NewAssignRiderCommand(kernel.NewUUID(), kernel.UUID{})
		require.Error(t, err)
	})
}

func TestAssignRiderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.AssignRiderCommand // zero value, not constructed via constructor

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignRiderCommandIsNotConstructed)
}
