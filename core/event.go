package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// EventType ledger event type
type EventType string

const (
	// EventPosted posted balance changed
	EventPosted EventType = "Posted"
	// EventBorrowed debt balance changed
	EventBorrowed EventType = "Borrowed"
)

// Event ledger update event, Total is the balance after the change.
// Decimal and time fields are kept whole when flattened into log fields.
type Event struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	EventID   string          `sql:"size:36;unique_index:event_idx" json:"event_id"`
	Type      EventType       `sql:"size:16" json:"type"`
	Operation string          `sql:"size:24" json:"operation"`
	Caller    string          `sql:"size:36" json:"caller"`
	Class     CollateralClass `sql:"size:16" json:"class"`
	Maturity  int64           `json:"maturity,omitempty"`
	Account   string          `sql:"size:36;index" json:"account"`
	Change    decimal.Decimal `sql:"type:decimal(64,18)" json:"change" structs:",omitnested"`
	Total     decimal.Decimal `sql:"type:decimal(64,18)" json:"total" structs:",omitnested"`
	Meta      types.JSONText  `sql:"type:varchar(1024)" json:"meta,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at" structs:",omitnested"`
}

// IEventStore event store interface
type IEventStore interface {
	List(ctx context.Context, account string, from uint64, limit int) ([]*Event, error)
}
