package series

import (
	"context"

	"dealer/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type seriesStore struct {
	db *db.DB
}

// New new series store
func New(db *db.DB) core.ISeriesStore {
	return &seriesStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Series{})
		if err := tx.AutoMigrate(core.Series{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_series_maturity", "maturity").Error; err != nil {
			return err
		}

		return nil
	})
}

// All series in registration order
func (s *seriesStore) All(ctx context.Context) ([]*core.Series, error) {
	var series []*core.Series
	if err := s.db.View().Order("id").Find(&series).Error; err != nil {
		return nil, err
	}

	return series, nil
}

func (s *seriesStore) Find(ctx context.Context, maturity int64) (*core.Series, error) {
	var series core.Series
	if err := s.db.View().Where("maturity = ?", maturity).First(&series).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrUnrecognizedSeries
		}
		return nil, err
	}

	return &series, nil
}

func (s *seriesStore) Mature(ctx context.Context, series *core.Series) error {
	return s.db.Update().Model(core.Series{}).
		Where("maturity = ? AND matured = ?", series.Maturity, false).
		Updates(map[string]interface{}{
			"matured": true,
			"rate":    series.Rate,
			"chi":     series.Chi,
		}).Error
}
