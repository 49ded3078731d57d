package dealer

import (
	"context"
	"errors"

	"dealer/core"
	"dealer/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// RepaySynthetic burn up to amount of the synthetic asset held by `from` to
// reduce the debt of `to`. The amount is capped at the debt, the excess is not consumed.
func (d *Dealer) RepaySynthetic(ctx context.Context, caller string, class core.CollateralClass, maturity int64, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	var repaid decimal.Decimal
	err := d.exec(ctx, "repay_synthetic", caller, func(u *unit) error {
		handle, err := d.repayable(u, class, maturity, from, amount)
		if err != nil {
			return err
		}

		toRepay := number.Min(amount, d.ledger.Debt(class, maturity, to))
		if err := handle.Burn(u.ctx, from, toRepay); err != nil {
			return transferFailed(err)
		}
		u.compensate(func(ctx context.Context) error {
			return handle.Mint(ctx, from, toRepay)
		})

		if err := d.reduceDebt(u, class, maturity, to, toRepay); err != nil {
			return err
		}

		repaid = toRepay
		return nil
	})

	if err != nil {
		return decimal.Zero, err
	}

	return repaid, nil
}

// RepaySettlement take up to amount of the settlement asset from `from` to
// reduce the debt of `to`. The amount is capped at the debt value.
func (d *Dealer) RepaySettlement(ctx context.Context, caller string, class core.CollateralClass, maturity int64, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	var repaid decimal.Decimal
	err := d.exec(ctx, "repay_settlement", caller, func(u *unit) error {
		if _, err := d.repayable(u, class, maturity, from, amount); err != nil {
			return err
		}

		debt := d.ledger.Debt(class, maturity, to)
		debtValue, err := d.toSettlementValue(u.ctx, class, maturity, debt)
		if err != nil {
			return err
		}

		toRepay := number.Min(amount, debtValue)
		if err := d.treasury.ReceiveSettlement(u.ctx, from, toRepay); err != nil {
			return transferFailed(err)
		}
		u.compensate(func(ctx context.Context) error {
			return d.treasury.ReleaseSettlement(ctx, from, toRepay)
		})

		// paying the whole value clears the whole debt, no rounding dust left
		synthetic := debt
		if toRepay.LessThan(debtValue) {
			if synthetic, err = d.toSyntheticValue(u.ctx, class, maturity, toRepay); err != nil {
				return err
			}
		}

		if err := d.reduceDebt(u, class, maturity, to, synthetic); err != nil {
			return err
		}

		repaid = toRepay
		return nil
	})

	if err != nil {
		return decimal.Zero, err
	}

	return repaid, nil
}

func (d *Dealer) repayable(u *unit, class core.CollateralClass, maturity int64, from string, amount decimal.Decimal) (core.IFYToken, error) {
	if err := d.requireLive(class); err != nil {
		return nil, err
	}

	if err := requireAmount(amount); err != nil {
		return nil, err
	}

	handle, ok := d.registry.Get(maturity)
	if !ok {
		return nil, core.ErrUnrecognizedSeries
	}

	if err := d.requireHolder(u.ctx, u.caller, from); err != nil {
		return nil, err
	}

	return handle, nil
}

// reduceDebt shared by repayments and grab, returns the deposit to the caller
// when the debt slot empties
func (d *Dealer) reduceDebt(u *unit, class core.CollateralClass, maturity int64, account string, amount decimal.Decimal) error {
	prior := d.ledger.Debt(class, maturity, account)
	balance, err := d.ledger.SubDebt(class, maturity, account, amount)
	if err != nil {
		if errors.Is(err, core.ErrInsufficientBalance) {
			logger.FromContext(u.ctx).WithError(err).Errorf("debt invariant violated: %s/%d/%s owes %s, reducing %s",
				class, maturity, account, prior, amount)
		}
		return err
	}

	if !prior.IsZero() && balance.IsZero() {
		if err := d.returnDeposit(u, u.caller); err != nil {
			return err
		}
	}

	u.emit(core.EventBorrowed, class, maturity, account, amount.Neg(), balance)
	return nil
}
