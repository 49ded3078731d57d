package dealer

import (
	"context"

	"dealer/core"
	"dealer/pkg/number"

	"github.com/shopspring/decimal"
)

// Erase clear the whole position of account in class, privileged callers only.
// Returns the collateral seized and the settlement value of the debt erased.
func (d *Dealer) Erase(ctx context.Context, caller string, class core.CollateralClass, account string) (decimal.Decimal, decimal.Decimal, error) {
	var collateral, debtValue decimal.Decimal
	err := d.exec(ctx, "erase", caller, func(u *unit) error {
		if err := d.requireLive(class); err != nil {
			return err
		}

		if err := d.requirePrivileged(u.ctx, caller); err != nil {
			return err
		}

		total := decimal.Zero
		for _, maturity := range d.registry.Enumerate() {
			debt := d.ledger.Debt(class, maturity, account)
			if !debt.IsZero() {
				value, err := d.toSettlementValue(u.ctx, class, maturity, debt)
				if err != nil {
					return err
				}

				if total, err = number.Add(total, value); err != nil {
					return err
				}

				if _, err := d.ledger.ZeroDebt(class, maturity, account); err != nil {
					return err
				}

				if err := d.returnDeposit(u, caller); err != nil {
					return err
				}
			}

			u.emit(core.EventBorrowed, class, maturity, account, debt.Neg(), decimal.Zero)
		}

		posted, err := d.ledger.ZeroPosted(class, account)
		if err != nil {
			return err
		}

		if !posted.IsZero() {
			if err := d.returnDeposit(u, caller); err != nil {
				return err
			}
		}

		u.emit(core.EventPosted, class, 0, account, posted.Neg(), decimal.Zero)
		collateral, debtValue = posted, total
		return nil
	})

	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return collateral, debtValue, nil
}

// Grab seize exactly collateral from account and clear debt worth debtValue in
// the settlement asset, walking the series in registration order. Privileged
// callers only.
func (d *Dealer) Grab(ctx context.Context, caller string, class core.CollateralClass, account string, debtValue, collateral decimal.Decimal) error {
	return d.exec(ctx, "grab", caller, func(u *unit) error {
		if err := d.requireLive(class); err != nil {
			return err
		}

		if err := d.requirePrivileged(u.ctx, caller); err != nil {
			return err
		}

		if err := requireAmount(debtValue); err != nil {
			return err
		}

		if err := requireAmount(collateral); err != nil {
			return err
		}

		prior := d.ledger.Posted(class, account)
		balance, err := d.ledger.SubPosted(class, account, collateral)
		if err != nil {
			return err
		}

		if !prior.IsZero() && balance.IsZero() {
			if err := d.returnDeposit(u, caller); err != nil {
				return err
			}
		}

		u.emit(core.EventPosted, class, 0, account, collateral.Neg(), balance)

		grabbed := decimal.Zero
		for _, maturity := range d.registry.Enumerate() {
			if grabbed.Equal(debtValue) {
				break
			}

			debt := d.ledger.Debt(class, maturity, account)
			if debt.IsZero() {
				continue
			}

			value, err := d.toSettlementValue(u.ctx, class, maturity, debt)
			if err != nil {
				return err
			}
			if value.IsZero() {
				continue
			}

			remaining, err := number.Sub(debtValue, grabbed)
			if err != nil {
				return err
			}

			take := number.Min(remaining, value)
			synthetic := debt
			if take.LessThan(value) {
				// rounded up so the debt cleared is worth at least take
				if synthetic, err = d.toSyntheticValueUp(u.ctx, class, maturity, take); err != nil {
					return err
				}
				synthetic = number.Min(synthetic, debt)
			}

			if err := d.reduceDebt(u, class, maturity, account, synthetic); err != nil {
				return err
			}

			if grabbed, err = number.Add(grabbed, take); err != nil {
				return err
			}
		}

		if grabbed.LessThan(debtValue) {
			return core.ErrInsufficientDebt
		}

		return nil
	})
}
