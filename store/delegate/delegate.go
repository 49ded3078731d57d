package delegate

import (
	"context"

	"dealer/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type delegateStore struct {
	db *db.DB
}

// New new delegate store
func New(db *db.DB) core.IDelegateStore {
	return &delegateStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Delegate{})
		if err := tx.AutoMigrate(core.Delegate{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_delegates_account", "account", "delegate").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *delegateStore) Add(ctx context.Context, account, delegate string) error {
	d := &core.Delegate{
		Account:  account,
		Delegate: delegate,
	}

	return s.db.Update().Where("account = ? AND delegate = ?", account, delegate).FirstOrCreate(d).Error
}

func (s *delegateStore) Revoke(ctx context.Context, account, delegate string) error {
	return s.db.Update().Where("account = ? AND delegate = ?", account, delegate).Delete(core.Delegate{}).Error
}

func (s *delegateStore) Has(ctx context.Context, account, delegate string) (bool, error) {
	var d core.Delegate
	if err := s.db.View().Where("account = ? AND delegate = ?", account, delegate).First(&d).Error; err != nil {
		if store.IsErrNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
