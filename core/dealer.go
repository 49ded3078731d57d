package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// IDealer collateralized debt ledger
type IDealer interface {
	RegisterSeries(ctx context.Context, caller string, series IFYToken) error
	Shutdown(ctx context.Context, caller string) error
	Live() bool

	Post(ctx context.Context, caller string, class CollateralClass, from, to string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, caller string, class CollateralClass, from, to string, amount decimal.Decimal) error
	Borrow(ctx context.Context, caller string, class CollateralClass, maturity int64, from, to string, amount decimal.Decimal) error
	// RepaySynthetic returns the amount actually consumed
	RepaySynthetic(ctx context.Context, caller string, class CollateralClass, maturity int64, from, to string, amount decimal.Decimal) (decimal.Decimal, error)
	// RepaySettlement returns the settlement amount actually consumed
	RepaySettlement(ctx context.Context, caller string, class CollateralClass, maturity int64, from, to string, amount decimal.Decimal) (decimal.Decimal, error)

	Erase(ctx context.Context, caller string, class CollateralClass, account string) (decimal.Decimal, decimal.Decimal, error)
	Grab(ctx context.Context, caller string, class CollateralClass, account string, debtValue, collateral decimal.Decimal) error

	IsRegistered(maturity int64) bool
	SeriesList(ctx context.Context) ([]*SeriesView, error)
	Posted(class CollateralClass, account string) decimal.Decimal
	Debt(class CollateralClass, maturity int64, account string) decimal.Decimal
	TotalDebtValue(ctx context.Context, class CollateralClass, account string) (decimal.Decimal, error)
	BorrowingPower(ctx context.Context, class CollateralClass, account string) (decimal.Decimal, error)
	IsSafe(ctx context.Context, class CollateralClass, account string) (bool, error)
	ToSettlementValue(ctx context.Context, class CollateralClass, maturity int64, amount decimal.Decimal) (decimal.Decimal, error)
	ToSyntheticValue(ctx context.Context, class CollateralClass, maturity int64, amount decimal.Decimal) (decimal.Decimal, error)
	Position(ctx context.Context, class CollateralClass, account string) (*Position, error)
	Audit(ctx context.Context) error
}
