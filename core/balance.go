package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CustodyAccount account holding assets in custody
const CustodyAccount = "00000000-0000-0000-0000-000000000000"

// Balance book balance of an asset held by an account
type Balance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string          `sql:"size:36;unique_index:balance_idx" json:"asset_id"`
	Account   string          `sql:"size:36;unique_index:balance_idx" json:"account"`
	Amount    decimal.Decimal `sql:"type:decimal(64,18)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IBalanceStore book balances used by the book-backed collaborators
type IBalanceStore interface {
	Find(ctx context.Context, assetID, account string) (*Balance, error)
	ListByAccount(ctx context.Context, account string) ([]*Balance, error)
	// Transfer moves amount between accounts, an empty from mints and an empty to burns
	Transfer(ctx context.Context, assetID, from, to string, amount decimal.Decimal) error
}
