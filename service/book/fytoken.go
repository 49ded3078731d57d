package book

import (
	"context"
	"sync"
	"time"

	"dealer/core"
	"dealer/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// FYToken synthetic token of one series kept as book balances. At maturity
// the rate and chi indexes are recorded, growth is the index now over the
// index at maturity.
type FYToken struct {
	mu     sync.Mutex
	series *core.Series

	balances core.IBalanceStore
	store    core.ISeriesStore
	rate     core.IOracle
	chi      core.IOracle

	now func() time.Time
}

func NewFYToken(
	series *core.Series,
	balances core.IBalanceStore,
	store core.ISeriesStore,
	rate core.IOracle,
	chi core.IOracle,
) *FYToken {
	return &FYToken{
		series:   series,
		balances: balances,
		store:    store,
		rate:     rate,
		chi:      chi,
		now:      time.Now,
	}
}

func (f *FYToken) Maturity() int64 {
	return f.series.Maturity
}

func (f *FYToken) AssetID() string {
	return f.series.AssetID
}

func (f *FYToken) IsMatured(ctx context.Context) (bool, error) {
	return f.now().Unix() >= f.series.Maturity, nil
}

func (f *FYToken) RateGrowth(ctx context.Context) (decimal.Decimal, error) {
	return f.growth(ctx, f.rate, func(s *core.Series) decimal.Decimal { return s.Rate })
}

func (f *FYToken) AccrualGrowth(ctx context.Context) (decimal.Decimal, error) {
	return f.growth(ctx, f.chi, func(s *core.Series) decimal.Decimal { return s.Chi })
}

func (f *FYToken) growth(ctx context.Context, index core.IOracle, atMaturity func(s *core.Series) decimal.Decimal) (decimal.Decimal, error) {
	matured, err := f.IsMatured(ctx)
	if err != nil || !matured {
		return number.One, err
	}

	snapshot, err := f.mature(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	current, err := index.Price(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return number.DivRoundUp(current, atMaturity(snapshot), number.RayPrecision)
}

// mature record the indexes the first time the series is seen matured
func (f *FYToken) mature(ctx context.Context) (*core.Series, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.series.Matured {
		return f.series, nil
	}

	rate, err := f.rate.Price(ctx)
	if err != nil {
		return nil, err
	}

	chi, err := f.chi.Price(ctx)
	if err != nil {
		return nil, err
	}

	series := *f.series
	series.Matured = true
	series.Rate = rate
	series.Chi = chi

	if err := f.store.Mature(ctx, &series); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("series.Mature", series.Maturity)
		return nil, err
	}

	f.series = &series
	return f.series, nil
}

func (f *FYToken) Mint(ctx context.Context, to string, amount decimal.Decimal) error {
	return f.balances.Transfer(ctx, f.series.AssetID, "", to, amount)
}

func (f *FYToken) Burn(ctx context.Context, from string, amount decimal.Decimal) error {
	return f.balances.Transfer(ctx, f.series.AssetID, from, "", amount)
}
