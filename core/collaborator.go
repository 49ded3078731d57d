package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ITreasury custody of collateral and settlement asset
type ITreasury interface {
	// Receive move collateral of class from the account into custody
	Receive(ctx context.Context, class CollateralClass, from string, amount decimal.Decimal) error
	// Release move collateral of class out of custody to the account
	Release(ctx context.Context, class CollateralClass, to string, amount decimal.Decimal) error
	ReceiveSettlement(ctx context.Context, from string, amount decimal.Decimal) error
	ReleaseSettlement(ctx context.Context, to string, amount decimal.Decimal) error
}

// IOracle price of one collateral class in settlement asset, ray precision
type IOracle interface {
	Price(ctx context.Context) (decimal.Decimal, error)
}

// IFYToken future-dated synthetic token of one series
type IFYToken interface {
	Maturity() int64
	IsMatured(ctx context.Context) (bool, error)
	// RateGrowth growth applied to WETH debt after maturity
	RateGrowth(ctx context.Context) (decimal.Decimal, error)
	// AccrualGrowth growth applied to CHAI debt after maturity
	AccrualGrowth(ctx context.Context) (decimal.Decimal, error)
	Mint(ctx context.Context, to string, amount decimal.Decimal) error
	Burn(ctx context.Context, from string, amount decimal.Decimal) error
}

// IDepositToken incentive deposit token. Lock falls back to minting when the
// transfer in fails, so neither call is expected to fail.
type IDepositToken interface {
	Lock(ctx context.Context, from string, amount decimal.Decimal) error
	Return(ctx context.Context, to string, amount decimal.Decimal) error
}

// IAuthorizer capability checks
type IAuthorizer interface {
	IsOwner(ctx context.Context, caller string) bool
	IsPrivileged(ctx context.Context, caller string) bool
	IsHolderOrDelegate(ctx context.Context, caller, account string) bool
}
