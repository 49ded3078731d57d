package dealer

import (
	"context"

	"dealer/core"

	"github.com/shopspring/decimal"
)

// Post move collateral from `from` into custody and credit it to `to`
func (d *Dealer) Post(ctx context.Context, caller string, class core.CollateralClass, from, to string, amount decimal.Decimal) error {
	return d.exec(ctx, "post", caller, func(u *unit) error {
		if err := d.requireLive(class); err != nil {
			return err
		}

		if err := requireAmount(amount); err != nil {
			return err
		}

		if err := d.requireHolder(u.ctx, caller, from); err != nil {
			return err
		}

		if err := d.treasury.Receive(u.ctx, class, from, amount); err != nil {
			return transferFailed(err)
		}
		u.compensate(func(ctx context.Context) error {
			return d.treasury.Release(ctx, class, from, amount)
		})

		prior := d.ledger.Posted(class, to)
		balance, err := d.ledger.AddPosted(class, to, amount)
		if err != nil {
			return err
		}

		if prior.IsZero() && !balance.IsZero() {
			if err := d.lockDeposit(u, caller); err != nil {
				return err
			}
		}

		u.emit(core.EventPosted, class, 0, to, amount, balance)
		return nil
	})
}

// Withdraw release collateral posted by `from` to `to`, the account must stay safe
func (d *Dealer) Withdraw(ctx context.Context, caller string, class core.CollateralClass, from, to string, amount decimal.Decimal) error {
	return d.exec(ctx, "withdraw", caller, func(u *unit) error {
		if err := d.requireLive(class); err != nil {
			return err
		}

		if err := requireAmount(amount); err != nil {
			return err
		}

		if err := d.requireHolder(u.ctx, caller, from); err != nil {
			return err
		}

		prior := d.ledger.Posted(class, from)
		balance, err := d.ledger.SubPosted(class, from, amount)
		if err != nil {
			return err
		}

		if err := d.requireSafe(u.ctx, class, from); err != nil {
			return err
		}

		if err := d.treasury.Release(u.ctx, class, to, amount); err != nil {
			return transferFailed(err)
		}
		u.compensate(func(ctx context.Context) error {
			return d.treasury.Receive(ctx, class, to, amount)
		})

		if !prior.IsZero() && balance.IsZero() {
			if err := d.returnDeposit(u, caller); err != nil {
				return err
			}
		}

		u.emit(core.EventPosted, class, 0, from, amount.Neg(), balance)
		return nil
	})
}

// Borrow record debt on `from` in an unmatured series and mint the synthetic
// asset to `to`, the account must stay safe
func (d *Dealer) Borrow(ctx context.Context, caller string, class core.CollateralClass, maturity int64, from, to string, amount decimal.Decimal) error {
	return d.exec(ctx, "borrow", caller, func(u *unit) error {
		if err := d.requireLive(class); err != nil {
			return err
		}

		if err := requireAmount(amount); err != nil {
			return err
		}

		handle, ok := d.registry.Get(maturity)
		if !ok {
			return core.ErrUnrecognizedSeries
		}

		matured, err := handle.IsMatured(u.ctx)
		if err != nil {
			return err
		}
		if matured {
			return core.ErrSeriesMatured
		}

		if err := d.requireHolder(u.ctx, caller, from); err != nil {
			return err
		}

		// locked before the safety check, a failing borrow rolls it back
		if d.ledger.Debt(class, maturity, from).IsZero() && amount.IsPositive() {
			if err := d.lockDeposit(u, caller); err != nil {
				return err
			}
		}

		balance, err := d.ledger.AddDebt(class, maturity, from, amount)
		if err != nil {
			return err
		}

		if err := d.requireSafe(u.ctx, class, from); err != nil {
			return err
		}

		if err := handle.Mint(u.ctx, to, amount); err != nil {
			return transferFailed(err)
		}
		u.compensate(func(ctx context.Context) error {
			return handle.Burn(ctx, to, amount)
		})

		u.emit(core.EventBorrowed, class, maturity, from, amount, balance)
		return nil
	})
}
