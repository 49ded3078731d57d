package book

import (
	"context"
	"errors"

	"dealer/core"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// DepositToken incentive deposits held in custody
type DepositToken struct {
	balances core.IBalanceStore
	assetID  string
}

func NewDepositToken(balances core.IBalanceStore, assetID string) *DepositToken {
	return &DepositToken{
		balances: balances,
		assetID:  assetID,
	}
}

// Lock take the deposit from `from`, minted into custody if `from` can't pay
func (d *DepositToken) Lock(ctx context.Context, from string, amount decimal.Decimal) error {
	err := d.balances.Transfer(ctx, d.assetID, from, core.CustodyAccount, amount)
	if errors.Is(err, core.ErrInsufficientBalance) {
		logger.FromContext(ctx).Debugf("deposit: %s can't pay %s, minting", from, amount)
		return d.balances.Transfer(ctx, d.assetID, "", core.CustodyAccount, amount)
	}

	return err
}

func (d *DepositToken) Return(ctx context.Context, to string, amount decimal.Decimal) error {
	return d.balances.Transfer(ctx, d.assetID, core.CustodyAccount, to, amount)
}
