package services

import (
	"errors"
	"fmt"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

// ErrTariffIsNotConstructed is returned when a Tariff instance was not created
// through the NewTariff constructor.
var ErrTariffIsNotConstructed = errors.New("Tariff must be created via NewTariff constructor")

// Tariff is a business's delivery pricing configuration: a flat base fee plus
// a per-kilometer rate.
type Tariff struct { //nolint:recvcheck //using for validation
	baseFee   kernel.Money
	perKmRate kernel.Money

	guard guard.ConstructorGuard
}

// NewTariff creates a Tariff. Money values are non-negative by construction,
// so no further range checks apply.
func NewTariff(baseFee kernel.Money, perKmRate kernel.Money) (Tariff, error) {
	if baseFee < 0 {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("baseFee",
			fmt.Errorf("%d kobo is negative", baseFee.Kobo()))
	}
	if perKmRate < 0 {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("perKmRate",
			fmt.Errorf("%d kobo is negative", perKmRate.Kobo()))
	}

	return Tariff{
		baseFee:   baseFee,
		perKmRate: perKmRate,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Tariff was created through NewTariff.
func (t Tariff) Validate() error {
	return t.guard.Validate(ErrTariffIsNotConstructed)
}

// BaseFee returns the flat fee component.
func (t Tariff) BaseFee() kernel.Money {
	return t.baseFee
}

// PerKmRate returns the per-kilometer fee component.
func (t Tariff) PerKmRate() kernel.Money {
	return t.perKmRate
}

// DeliveryPricer is a pure domain service deriving a delivery fee from route
// distance: fee = baseFee + distanceKm * perKmRate, rounded to the kobo.
// It is re-evaluated whenever a delivery is assigned or re-assigned.
//
// Example:
//
//	tariff, _ := NewTariff(kernel.NewMoneyFromNaira(500), kernel.NewMoneyFromNaira(50))
//	fee, err := NewDeliveryPricer().Quote(8.4, tariff)
//	// fee = ₦920.00
type DeliveryPricer struct{}

// NewDeliveryPricer creates a DeliveryPricer.
func NewDeliveryPricer() DeliveryPricer {
	return DeliveryPricer{}
}

// Quote computes the fee for a route of distanceKm under the given tariff.
// Negative distances and unconstructed tariffs are rejected; the computation
// itself is deterministic and side-effect free.
func (DeliveryPricer) Quote(distanceKm float64, tariff Tariff) (kernel.Money, error) {
	if err := tariff.Validate(); err != nil {
		return 0, err
	}
	if distanceKm < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}

	return tariff.baseFee.Add(tariff.perKmRate.MulKm(distanceKm)), nil
}
