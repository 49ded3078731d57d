package dealer

import (
	"context"

	"dealer/core"
	"dealer/pkg/number"

	"github.com/shopspring/decimal"
)

// BorrowingPower posted collateral valued in the settlement asset
func (d *Dealer) BorrowingPower(ctx context.Context, class core.CollateralClass, account string) (decimal.Decimal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.borrowingPower(ctx, class, account)
}

// TotalDebtValue debt of account across every series, in the settlement asset
func (d *Dealer) TotalDebtValue(ctx context.Context, class core.CollateralClass, account string) (decimal.Decimal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.totalDebtValue(ctx, class, account)
}

// IsSafe borrowing power covers the total debt value
func (d *Dealer) IsSafe(ctx context.Context, class core.CollateralClass, account string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.isSafe(ctx, class, account)
}

func (d *Dealer) borrowingPower(ctx context.Context, class core.CollateralClass, account string) (decimal.Decimal, error) {
	oracle, ok := d.oracles[class]
	if !ok {
		return decimal.Zero, core.ErrUnsupportedCollateral
	}

	price, err := oracle.Price(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return number.MulRay(d.ledger.Posted(class, account), price), nil
}

func (d *Dealer) totalDebtValue(ctx context.Context, class core.CollateralClass, account string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, maturity := range d.registry.Enumerate() {
		debt := d.ledger.Debt(class, maturity, account)
		if debt.IsZero() {
			continue
		}

		value, err := d.toSettlementValue(ctx, class, maturity, debt)
		if err != nil {
			return decimal.Zero, err
		}

		if total, err = number.Add(total, value); err != nil {
			return decimal.Zero, err
		}
	}

	return total, nil
}

func (d *Dealer) isSafe(ctx context.Context, class core.CollateralClass, account string) (bool, error) {
	power, err := d.borrowingPower(ctx, class, account)
	if err != nil {
		return false, err
	}

	debt, err := d.totalDebtValue(ctx, class, account)
	if err != nil {
		return false, err
	}

	return power.GreaterThanOrEqual(debt), nil
}

// requireSafe fails with core.ErrUndercollateralized if the account is not safe
func (d *Dealer) requireSafe(ctx context.Context, class core.CollateralClass, account string) error {
	safe, err := d.isSafe(ctx, class, account)
	if err != nil {
		return err
	}

	if !safe {
		return core.ErrUndercollateralized
	}

	return nil
}

// Position posted collateral and per-series debt of account with the gate values
func (d *Dealer) Position(ctx context.Context, class core.CollateralClass, account string) (*core.Position, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !class.Valid() {
		return nil, core.ErrUnrecognizedCollateral
	}

	p := &core.Position{
		Class:   class,
		Account: account,
		Posted:  d.ledger.Posted(class, account),
		Debts:   []*core.SeriesDebt{},
	}

	for _, maturity := range d.registry.Enumerate() {
		debt := d.ledger.Debt(class, maturity, account)
		if debt.IsZero() {
			continue
		}

		value, err := d.toSettlementValue(ctx, class, maturity, debt)
		if err != nil {
			return nil, err
		}

		p.Debts = append(p.Debts, &core.SeriesDebt{
			Maturity:        maturity,
			Debt:            debt,
			SettlementValue: value,
		})
	}

	var err error
	if p.BorrowingPower, err = d.borrowingPower(ctx, class, account); err != nil {
		return nil, err
	}

	if p.TotalDebtValue, err = d.totalDebtValue(ctx, class, account); err != nil {
		return nil, err
	}

	p.Safe = p.BorrowingPower.GreaterThanOrEqual(p.TotalDebtValue)
	return p, nil
}
