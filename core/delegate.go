package core

import (
	"context"
	"time"
)

// Delegate account allowed to act on behalf of another
type Delegate struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Account   string    `sql:"size:36;unique_index:delegate_idx" json:"account"`
	Delegate  string    `sql:"size:36;unique_index:delegate_idx" json:"delegate"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IDelegateStore delegate store interface
type IDelegateStore interface {
	Add(ctx context.Context, account, delegate string) error
	Revoke(ctx context.Context, account, delegate string) error
	Has(ctx context.Context, account, delegate string) (bool, error)
}

// IDelegateService delegation management
type IDelegateService interface {
	AddDelegate(ctx context.Context, caller, delegate string) error
	RevokeDelegate(ctx context.Context, caller, delegate string) error
}
