package kernel

import (
	"fmt"
	"math"

	"fulfilment/internal/pkg/errs"
)

// Money represents a Naira amount held in minor units (kobo) to avoid
// floating-point drift in order totals and delivery fees. Persistence
// adapters convert to and from NUMERIC columns.
//
// Money is a plain integer value object: the zero value is a valid ₦0.00.
type Money int64

// NewMoneyFromNaira creates Money from a float64 Naira amount, rounding to
// the nearest kobo.
func NewMoneyFromNaira(naira float64) Money {
	return Money(math.Round(naira * 100.0))
}

// NewMoney creates Money from an amount of kobo. Negative amounts are
// rejected with a ValueIsInvalidError; monetary fields in this domain
// (prices, fees, discounts) are never negative.
func NewMoney(kobo int64) (Money, error) {
	if kobo < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d kobo is negative", kobo))
	}
	return Money(kobo), nil
}

// Kobo returns the amount in minor units.
func (m Money) Kobo() int64 {
	return int64(m)
}

// Naira returns the amount as a float64 Naira value.
func (m Money) Naira() float64 {
	return float64(m) / 100.0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns the difference of two amounts. The result may be negative;
// callers enforcing non-negativity validate the result themselves.
func (m Money) Sub(other Money) Money {
	return m - other
}

// MulQty returns the amount multiplied by a quantity.
func (m Money) MulQty(qty int) Money {
	return m * Money(qty)
}

// MulKm returns the amount multiplied by a distance in kilometers, rounded to
// the nearest kobo. Used for per-kilometer delivery fee components.
func (m Money) MulKm(km float64) Money {
	return Money(math.Round(float64(m) * km))
}

// String returns the amount formatted as "₦1234.56".
// Implements fmt.Stringer.
func (m Money) String() string {
	return fmt.Sprintf("₦%.2f", m.Naira())
}
