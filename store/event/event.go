package event

import (
	"context"

	"dealer/core"

	"github.com/fox-one/pkg/store/db"
)

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.IEventStore {
	return &eventStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})
		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_events_event_id", "event_id").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_events_account", "account").Error; err != nil {
			return err
		}

		return nil
	})
}

// List events after id from, all accounts if account is empty
func (s *eventStore) List(ctx context.Context, account string, from uint64, limit int) ([]*core.Event, error) {
	tx := s.db.View().Where("id > ?", from)
	if account != "" {
		tx = tx.Where("account = ?", account)
	}

	var events []*core.Event
	if err := tx.Order("id").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
