package book

import (
	"context"

	"dealer/core"

	"github.com/shopspring/decimal"
)

// Treasury custody kept as book balances of core.CustodyAccount
type Treasury struct {
	balances        core.IBalanceStore
	assets          map[core.CollateralClass]string
	settlementAsset string
}

// NewTreasury new treasury, assets maps every collateral class to its asset id
func NewTreasury(balances core.IBalanceStore, assets map[core.CollateralClass]string, settlementAsset string) *Treasury {
	return &Treasury{
		balances:        balances,
		assets:          assets,
		settlementAsset: settlementAsset,
	}
}

func (t *Treasury) asset(class core.CollateralClass) (string, error) {
	assetID, ok := t.assets[class]
	if !ok {
		return "", core.ErrUnsupportedCollateral
	}

	return assetID, nil
}

func (t *Treasury) Receive(ctx context.Context, class core.CollateralClass, from string, amount decimal.Decimal) error {
	assetID, err := t.asset(class)
	if err != nil {
		return err
	}

	return t.balances.Transfer(ctx, assetID, from, core.CustodyAccount, amount)
}

func (t *Treasury) Release(ctx context.Context, class core.CollateralClass, to string, amount decimal.Decimal) error {
	assetID, err := t.asset(class)
	if err != nil {
		return err
	}

	return t.balances.Transfer(ctx, assetID, core.CustodyAccount, to, amount)
}

func (t *Treasury) ReceiveSettlement(ctx context.Context, from string, amount decimal.Decimal) error {
	return t.balances.Transfer(ctx, t.settlementAsset, from, core.CustodyAccount, amount)
}

func (t *Treasury) ReleaseSettlement(ctx context.Context, to string, amount decimal.Decimal) error {
	return t.balances.Transfer(ctx, t.settlementAsset, core.CustodyAccount, to, amount)
}
