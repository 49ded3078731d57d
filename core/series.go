package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Series registered debt series, keyed by maturity. Rate and Chi are the
// accrual indexes recorded when the series matured.
type Series struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Maturity  int64           `sql:"unique_index:series_maturity_idx" json:"maturity"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Matured   bool            `sql:"default:false" json:"matured"`
	Rate      decimal.Decimal `sql:"type:decimal(64,27)" json:"rate"`
	Chi       decimal.Decimal `sql:"type:decimal(64,27)" json:"chi"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ISeriesStore series store interface
type ISeriesStore interface {
	All(ctx context.Context) ([]*Series, error)
	Find(ctx context.Context, maturity int64) (*Series, error)
	// Mature record the accrual indexes once, no-op if already matured
	Mature(ctx context.Context, series *Series) error
}

// SeriesView series with its current state
type SeriesView struct {
	Maturity      int64           `json:"maturity"`
	Matured       bool            `json:"matured"`
	RateGrowth    decimal.Decimal `json:"rate_growth"`
	AccrualGrowth decimal.Decimal `json:"accrual_growth"`
}
