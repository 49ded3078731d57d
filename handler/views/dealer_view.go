package views

import (
	"dealer/core"

	"github.com/shopspring/decimal"
)

// Repaid amount a repayment consumed
type Repaid struct {
	Repaid decimal.Decimal `json:"repaid"`
}

// Erased result of an erase
type Erased struct {
	Collateral decimal.Decimal `json:"collateral"`
	DebtValue  decimal.Decimal `json:"debt_value"`
}

// Value converted amount
type Value struct {
	Class    core.CollateralClass `json:"class"`
	Maturity int64                `json:"maturity"`
	Amount   decimal.Decimal      `json:"amount"`
	Value    decimal.Decimal      `json:"value"`
}

// System liveness and totals
type System struct {
	Live   bool               `json:"live"`
	Series []*core.SeriesView `json:"series"`
}
