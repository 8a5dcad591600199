package kernel_test

import (
	"testing"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create from kobo", func(t *testing.T) {
		m, err := kernel.NewMoney(50000)

		require.NoError(t, err)
		assert.Equal(t, int64(50000), m.Kobo())
		assert.InDelta(t, 500.0, m.Naira(), 1e-9)
	})

	t.Run("should accept zero", func(t *testing.T) {
		m, err := kernel.NewMoney(0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Kobo())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewMoneyFromNaira(t *testing.T) {
	t.Run("should round to nearest kobo", func(t *testing.T) {
		assert.Equal(t, int64(1234_56), kernel.NewMoneyFromNaira(1234.556).Kobo())
		assert.Equal(t, int64(50), kernel.NewMoneyFromNaira(0.495).Kobo())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("should add and subtract", func(t *testing.T) {
		a := kernel.NewMoneyFromNaira(500)
		b := kernel.NewMoneyFromNaira(420)

		assert.Equal(t, kernel.NewMoneyFromNaira(920), a.Add(b))
		assert.Equal(t, kernel.NewMoneyFromNaira(80), a.Sub(b))
	})

	t.Run("should multiply by quantity", func(t *testing.T) {
		unit := kernel.NewMoneyFromNaira(4000)

		assert.Equal(t, kernel.NewMoneyFromNaira(12000), unit.MulQty(3))
	})

	t.Run("should multiply per-km rate by distance", func(t *testing.T) {
		perKm := kernel.NewMoneyFromNaira(50)

		assert.Equal(t, kernel.NewMoneyFromNaira(420), perKm.MulKm(8.4))
	})
}

func TestMoney_String(t *testing.T) {
	t.Run("should format as naira", func(t *testing.T) {
		assert.Equal(t, "₦920.00", kernel.NewMoneyFromNaira(920).String())
		assert.Equal(t, "₦0.50", kernel.Money(50).String())
	})
}
