package dealer

import (
	"context"

	"dealer/core"
	"dealer/pkg/number"

	"github.com/shopspring/decimal"
)

// ToSettlementValue value of a synthetic amount in the settlement asset
func (d *Dealer) ToSettlementValue(ctx context.Context, class core.CollateralClass, maturity int64, amount decimal.Decimal) (decimal.Decimal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.toSettlementValue(ctx, class, maturity, amount)
}

// ToSyntheticValue synthetic amount worth the given settlement amount
func (d *Dealer) ToSyntheticValue(ctx context.Context, class core.CollateralClass, maturity int64, amount decimal.Decimal) (decimal.Decimal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.toSyntheticValue(ctx, class, maturity, amount)
}

func (d *Dealer) toSettlementValue(ctx context.Context, class core.CollateralClass, maturity int64, amount decimal.Decimal) (decimal.Decimal, error) {
	growth, matured, err := d.growth(ctx, class, maturity)
	if err != nil {
		return decimal.Zero, err
	}

	if !matured {
		return amount, nil
	}

	return number.MulRay(amount, growth), nil
}

func (d *Dealer) toSyntheticValue(ctx context.Context, class core.CollateralClass, maturity int64, amount decimal.Decimal) (decimal.Decimal, error) {
	growth, matured, err := d.growth(ctx, class, maturity)
	if err != nil {
		return decimal.Zero, err
	}

	if !matured {
		return amount, nil
	}

	return number.DivRay(amount, growth)
}

// toSyntheticValueUp like toSyntheticValue but rounded up, the synthetic
// amount is never worth less than the settlement amount
func (d *Dealer) toSyntheticValueUp(ctx context.Context, class core.CollateralClass, maturity int64, amount decimal.Decimal) (decimal.Decimal, error) {
	growth, matured, err := d.growth(ctx, class, maturity)
	if err != nil {
		return decimal.Zero, err
	}

	if !matured {
		return amount, nil
	}

	return number.DivRoundUp(amount, number.Ray(growth), number.WadPrecision)
}

// growth accrual factor of the series for class, unmatured series are valued 1:1
func (d *Dealer) growth(ctx context.Context, class core.CollateralClass, maturity int64) (decimal.Decimal, bool, error) {
	handle, ok := d.registry.Get(maturity)
	if !ok {
		return decimal.Zero, false, core.ErrUnrecognizedSeries
	}

	var source func(ctx context.Context) (decimal.Decimal, error)
	switch class {
	case core.WETH:
		source = handle.RateGrowth
	case core.CHAI:
		source = handle.AccrualGrowth
	default:
		return decimal.Zero, false, core.ErrUnsupportedCollateral
	}

	matured, err := handle.IsMatured(ctx)
	if err != nil {
		return decimal.Zero, false, err
	}

	if !matured {
		return number.One, false, nil
	}

	growth, err := source(ctx)
	return growth, true, err
}
