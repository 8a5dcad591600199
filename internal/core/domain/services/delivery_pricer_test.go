package services_test

import (
	"testing"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTariff(t *testing.T) {
	t.Run("should create a tariff from non-negative money", func(t *testing.T) {
		tariff, err := services.NewTariff(kernel.NewMoneyFromNaira(500), kernel.NewMoneyFromNaira(50))

		require.NoError(t, err)
		require.NoError(t, tariff.Validate())
		assert.Equal(t, kernel.NewMoneyFromNaira(500), tariff.BaseFee())
		assert.Equal(t, kernel.NewMoneyFromNaira(50), tariff.PerKmRate())
	})

	t.Run("should reject negative base fee", func(t *testing.T) {
		_, err := services.NewTariff(kernel.Money(-1), kernel.NewMoneyFromNaira(50))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "baseFee")
	})

	t.Run("should reject negative per-km rate", func(t *testing.T) {
		_, err := services.NewTariff(kernel.NewMoneyFromNaira(500), kernel.Money(-1))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "perKmRate")
	})

	t.Run("should reject a zero value tariff", func(t *testing.T) {
		var tariff services.Tariff
		require.ErrorIs(t, tariff.Validate(), services.ErrTariffIsNotConstructed)
	})
}

func TestDeliveryPricer_Quote(t *testing.T) {
	pricer := services.NewDeliveryPricer()

	tariff, err := services.NewTariff(kernel.NewMoneyFromNaira(500), kernel.NewMoneyFromNaira(50))
	require.NoError(t, err)

	t.Run("should price base fee plus distance", func(t *testing.T) {
		fee, err := pricer.Quote(8.4, tariff)

		require.NoError(t, err)
		assert.Equal(t, kernel.NewMoneyFromNaira(920), fee)
	})

	t.Run("should charge only the base fee for a zero-length route", func(t *testing.T) {
		fee, err := pricer.Quote(0, tariff)

		require.NoError(t, err)
		assert.Equal(t, kernel.NewMoneyFromNaira(500), fee)
	})

	t.Run("should round fractional kilometers to the kobo", func(t *testing.T) {
		fee, err := pricer.Quote(1.333, tariff)

		require.NoError(t, err)
		assert.Equal(t, kernel.NewMoneyFromNaira(500).Add(kernel.NewMoneyFromNaira(50).MulKm(1.333)), fee)
	})

	t.Run("should reject negative distance", func(t *testing.T) {
		_, err := pricer.Quote(-0.1, tariff)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "distanceKm")
	})

	t.Run("should reject a zero value tariff", func(t *testing.T) {
		_, err := pricer.Quote(1, services.Tariff{})

		require.ErrorIs(t, err, services.ErrTariffIsNotConstructed)
	})
}
