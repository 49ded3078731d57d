package core

import (
	"github.com/shopspring/decimal"
)

// PriceTicker price ticker served by a price feed
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}
