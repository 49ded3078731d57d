package dealer

import (
	"context"
	"encoding/json"
	"time"

	"dealer/core"

	"github.com/fatih/structs"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// unit one operation in flight: collaborator compensations, buffered events
// and hooks applied only when the operation commits
type unit struct {
	ctx      context.Context
	op       string
	caller   string
	undo     []func(ctx context.Context) error
	events   []*core.Event
	series   []*core.Series
	onCommit []func()
	shutdown bool
}

// compensate register the inverse of a collaborator call that already succeeded
func (u *unit) compensate(fn func(ctx context.Context) error) {
	u.undo = append(u.undo, fn)
}

func (u *unit) emit(typ core.EventType, class core.CollateralClass, maturity int64, account string, change, total decimal.Decimal) {
	meta, _ := json.Marshal(map[string]interface{}{
		"operation": u.op,
		"caller":    u.caller,
	})

	u.events = append(u.events, &core.Event{
		EventID:   uuid.New(),
		Type:      typ,
		Operation: u.op,
		Caller:    u.caller,
		Class:     class,
		Maturity:  maturity,
		Account:   account,
		Change:    change,
		Total:     total,
		Meta:      types.JSONText(meta),
		CreatedAt: time.Now(),
	})
}

// exec run fn as a unit: on error the ledger is rolled back and compensations
// run in reverse order, on success the changeset is persisted
func (d *Dealer) exec(ctx context.Context, op, caller string, fn func(u *unit) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"service": "dealer",
		"op":      op,
		"caller":  caller,
	})
	ctx = logger.WithContext(ctx, log)

	if err := d.ledger.Begin(); err != nil {
		log.WithError(err).Errorln("ledger.Begin")
		return err
	}

	u := &unit{ctx: ctx, op: op, caller: caller}
	err := fn(u)
	if err == nil {
		err = d.persist(u)
	}

	if err != nil {
		d.abort(u)
		log.WithError(err).Warnln("operation rejected")
		return err
	}

	if err := d.ledger.Commit(); err != nil {
		log.WithError(err).Errorln("ledger.Commit")
	}

	for _, fn := range u.onCommit {
		fn()
	}

	for _, e := range u.events {
		log.WithFields(logrus.Fields(structs.Map(e))).Debugln("event")
	}

	return nil
}

func (d *Dealer) persist(u *unit) error {
	if d.store == nil {
		return nil
	}

	posted, debts := d.ledger.Changes()
	cs := &core.Changeset{
		Posted:   posted,
		Debts:    debts,
		Series:   u.series,
		Events:   u.events,
		Shutdown: u.shutdown,
	}

	if cs.Empty() {
		return nil
	}

	return d.store.Commit(u.ctx, cs)
}

func (d *Dealer) abort(u *unit) {
	log := logger.FromContext(u.ctx)

	if err := d.ledger.Rollback(); err != nil {
		log.WithError(err).Errorln("ledger.Rollback")
	}

	for i := len(u.undo) - 1; i >= 0; i-- {
		if err := u.undo[i](u.ctx); err != nil {
			log.WithError(err).Errorln("compensation failed")
		}
	}
}
