package dealer

import (
	"context"
)

// lockDeposit lock one incentive deposit from payer when a slot opens
func (d *Dealer) lockDeposit(u *unit, payer string) error {
	if err := d.deposit.Lock(u.ctx, payer, d.depositAmount); err != nil {
		return transferFailed(err)
	}

	u.compensate(func(ctx context.Context) error {
		return d.deposit.Return(ctx, payer, d.depositAmount)
	})
	return nil
}

// returnDeposit return one incentive deposit to the caller when a slot empties
func (d *Dealer) returnDeposit(u *unit, to string) error {
	if err := d.deposit.Return(u.ctx, to, d.depositAmount); err != nil {
		return transferFailed(err)
	}

	u.compensate(func(ctx context.Context) error {
		return d.deposit.Lock(ctx, to, d.depositAmount)
	})
	return nil
}
