package ledger

import (
	"context"
	"time"

	"dealer/core"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// ShutdownKey property holding the shutdown time, zero while live
const ShutdownKey = "dealer:shutdown_at"

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.PostedBalance{})
		if err := tx.AutoMigrate(core.PostedBalance{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_posted_balances_account", "class", "account").Error; err != nil {
			return err
		}

		tx = db.Update().Model(core.DebtBalance{})
		if err := tx.AutoMigrate(core.DebtBalance{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_debt_balances_account", "class", "maturity", "account").Error; err != nil {
			return err
		}

		return nil
	})
}

type ledgerStore struct {
	db       *db.DB
	property property.Store
}

// New new ledger store
func New(db *db.DB, property property.Store) core.ILedgerStore {
	return &ledgerStore{
		db:       db,
		property: property,
	}
}

// Commit write the changeset in one transaction
func (s *ledgerStore) Commit(ctx context.Context, cs *core.Changeset) error {
	if err := s.db.Tx(func(tx *db.DB) error {
		for _, p := range cs.Posted {
			if err := savePosted(tx.Update(), p); err != nil {
				return err
			}
		}

		for _, d := range cs.Debts {
			if err := saveDebt(tx.Update(), d); err != nil {
				return err
			}
		}

		for _, series := range cs.Series {
			if err := tx.Update().Where("maturity = ?", series.Maturity).FirstOrCreate(series).Error; err != nil {
				return err
			}
		}

		for _, e := range cs.Events {
			if err := tx.Update().Where("event_id = ?", e.EventID).FirstOrCreate(e).Error; err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return err
	}

	if cs.Shutdown {
		return s.property.Save(ctx, ShutdownKey, time.Now().Unix())
	}

	return nil
}

func savePosted(tx *gorm.DB, p *core.PostedBalance) error {
	var cur core.PostedBalance
	if err := tx.Where("class = ? AND account = ?", p.Class, p.Account).First(&cur).Error; err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}

		p.Version = 1
		return tx.Create(p).Error
	}

	return updateAmount(tx, &core.PostedBalance{}, cur.ID, cur.Version, p.Amount)
}

func saveDebt(tx *gorm.DB, d *core.DebtBalance) error {
	var cur core.DebtBalance
	if err := tx.Where("class = ? AND maturity = ? AND account = ?", d.Class, d.Maturity, d.Account).First(&cur).Error; err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}

		d.Version = 1
		return tx.Create(d).Error
	}

	return updateAmount(tx, &core.DebtBalance{}, cur.ID, cur.Version, d.Amount)
}

// updateAmount write the row only if nobody else moved its version since it was read
func updateAmount(tx *gorm.DB, model interface{}, id uint64, version int64, amount decimal.Decimal) error {
	u := tx.Model(model).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"amount":  amount,
			"version": version + 1,
		})

	if u.Error != nil {
		return u.Error
	}

	if u.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

// ListPosted non-empty posted balances
func (s *ledgerStore) ListPosted(ctx context.Context) ([]*core.PostedBalance, error) {
	var posted []*core.PostedBalance
	if err := s.db.View().Where("amount > 0").Order("id").Find(&posted).Error; err != nil {
		return nil, err
	}

	return posted, nil
}

// ListDebts non-empty debt balances
func (s *ledgerStore) ListDebts(ctx context.Context) ([]*core.DebtBalance, error) {
	var debts []*core.DebtBalance
	if err := s.db.View().Where("amount > 0").Order("id").Find(&debts).Error; err != nil {
		return nil, err
	}

	return debts, nil
}

func (s *ledgerStore) IsLive(ctx context.Context) (bool, error) {
	v, err := s.property.Get(ctx, ShutdownKey)
	if err != nil {
		return false, err
	}

	return v.Int64() == 0, nil
}
