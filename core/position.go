package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PostedBalance collateral posted by an account
type PostedBalance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"-"`
	Class     CollateralClass `sql:"size:16;unique_index:posted_idx" json:"class"`
	Account   string          `sql:"size:36;unique_index:posted_idx" json:"account"`
	Amount    decimal.Decimal `sql:"type:decimal(64,18)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DebtBalance synthetic debt owed by an account in one series
type DebtBalance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"-"`
	Class     CollateralClass `sql:"size:16;unique_index:debt_idx" json:"class"`
	Maturity  int64           `sql:"unique_index:debt_idx" json:"maturity"`
	Account   string          `sql:"size:36;unique_index:debt_idx" json:"account"`
	Amount    decimal.Decimal `sql:"type:decimal(64,18)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Changeset everything one committed operation changed
type Changeset struct {
	Posted   []*PostedBalance
	Debts    []*DebtBalance
	Series   []*Series
	Events   []*Event
	Shutdown bool
}

// Empty nothing to persist
func (cs *Changeset) Empty() bool {
	return len(cs.Posted) == 0 && len(cs.Debts) == 0 && len(cs.Series) == 0 && len(cs.Events) == 0 && !cs.Shutdown
}

// ILedgerStore persists committed changesets and restores them on boot
type ILedgerStore interface {
	Commit(ctx context.Context, cs *Changeset) error
	ListPosted(ctx context.Context) ([]*PostedBalance, error)
	ListDebts(ctx context.Context) ([]*DebtBalance, error)
	IsLive(ctx context.Context) (bool, error)
}

// SeriesDebt debt of one series in a position view
type SeriesDebt struct {
	Maturity        int64           `json:"maturity"`
	Debt            decimal.Decimal `json:"debt"`
	SettlementValue decimal.Decimal `json:"settlement_value"`
}

// Position account position for one collateral class
type Position struct {
	Class          CollateralClass `json:"class"`
	Account        string          `json:"account"`
	Posted         decimal.Decimal `json:"posted"`
	Debts          []*SeriesDebt   `json:"debts"`
	BorrowingPower decimal.Decimal `json:"borrowing_power"`
	TotalDebtValue decimal.Decimal `json:"total_debt_value"`
	Safe           bool            `json:"safe"`
}
