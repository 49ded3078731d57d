package wallet

import (
	"context"

	"dealer/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Balance{})
		if err := tx.AutoMigrate(core.Balance{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_balances_asset_account", "asset_id", "account").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_balances_account", "account").Error; err != nil {
			return err
		}

		return nil
	})
}

type walletStore struct {
	db *db.DB
}

// New new wallet store keeping book balances
func New(db *db.DB) core.IBalanceStore {
	return &walletStore{
		db: db,
	}
}

// Find balance of account, zero balance if never credited
func (s *walletStore) Find(ctx context.Context, assetID, account string) (*core.Balance, error) {
	return find(s.db, assetID, account)
}

func (s *walletStore) ListByAccount(ctx context.Context, account string) ([]*core.Balance, error) {
	var balances []*core.Balance
	if err := s.db.View().Where("account = ?", account).Order("asset_id").Find(&balances).Error; err != nil {
		return nil, err
	}

	return balances, nil
}

func (s *walletStore) Transfer(ctx context.Context, assetID, from, to string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return core.ErrInvalidAmount
	}

	if amount.IsZero() || from == to {
		return nil
	}

	return s.db.Tx(func(tx *db.DB) error {
		if from != "" {
			if err := debit(tx, assetID, from, amount); err != nil {
				return err
			}
		}

		if to != "" {
			if err := credit(tx, assetID, to, amount); err != nil {
				return err
			}
		}

		return nil
	})
}

func find(tx *db.DB, assetID, account string) (*core.Balance, error) {
	b := core.Balance{
		AssetID: assetID,
		Account: account,
	}

	if err := tx.View().Where("asset_id = ? AND account = ?", assetID, account).First(&b).Error; err != nil && !store.IsErrNotFound(err) {
		return nil, err
	}

	return &b, nil
}

func debit(tx *db.DB, assetID, account string, amount decimal.Decimal) error {
	b, err := find(tx, assetID, account)
	if err != nil {
		return err
	}

	if b.Amount.LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	return update(tx, b, b.Amount.Sub(amount))
}

func credit(tx *db.DB, assetID, account string, amount decimal.Decimal) error {
	b, err := find(tx, assetID, account)
	if err != nil {
		return err
	}

	if b.ID == 0 {
		b.Amount = amount
		b.Version = 1
		return tx.Update().Create(b).Error
	}

	return update(tx, b, b.Amount.Add(amount))
}

func update(tx *db.DB, b *core.Balance, amount decimal.Decimal) error {
	version := b.Version
	u := tx.Update().Model(core.Balance{}).
		Where("id = ? AND version = ?", b.ID, version).
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

	b.Amount = amount
	b.Version = version + 1
	return nil
}
