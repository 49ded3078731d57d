package cmd

import (
	"context"
	"fmt"
	"time"

	"dealer/core"
	"dealer/service/auth"
	"dealer/service/book"
	"dealer/service/dealer"
	"dealer/service/oracle"
	"dealer/store/delegate"
	"dealer/store/event"
	"dealer/store/ledger"
	"dealer/store/series"
	"dealer/store/wallet"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

// provideRedis nil when no redis is configured, prices are then cached in
// process only
func provideRedis() *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

func provideCacheTTL() time.Duration {
	return time.Duration(cfg.App.CacheTTL) * time.Second
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideLedgerStore(db *db.DB, properties property.Store) core.ILedgerStore {
	return ledger.New(db, properties)
}

func provideSeriesStore(db *db.DB) core.ISeriesStore {
	return series.New(db)
}

func provideEventStore(db *db.DB) core.IEventStore {
	return event.New(db)
}

func provideDelegateStore(db *db.DB) core.IDelegateStore {
	return delegate.Cache(delegate.New(db), provideCacheTTL())
}

func provideBalanceStore(db *db.DB) core.IBalanceStore {
	return wallet.New(db)
}

// ------------------service------------------------------------

func provideOracle(key string, o core.Oracle, client *redis.Client) core.IOracle {
	if o.Endpoint == "" {
		return oracle.Fixed(o.Price)
	}

	return oracle.Cache(oracle.Ticker(o.Endpoint, o.Symbol), key, provideCacheTTL(), client)
}

func provideOracles(client *redis.Client) map[core.CollateralClass]core.IOracle {
	oracles := make(map[core.CollateralClass]core.IOracle, len(cfg.Collaterals))
	for _, c := range cfg.Collaterals {
		class, err := core.ParseCollateralClass(c.Class)
		if err != nil {
			panic(fmt.Errorf("collateral %q: %w", c.Class, err))
		}

		oracles[class] = provideOracle(class.String(), c.Oracle, client)
	}

	return oracles
}

func provideTreasury(balances core.IBalanceStore) core.ITreasury {
	assets := make(map[core.CollateralClass]string, len(cfg.Collaterals))
	for _, c := range cfg.Collaterals {
		class, err := core.ParseCollateralClass(c.Class)
		if err != nil {
			panic(fmt.Errorf("collateral %q: %w", c.Class, err))
		}

		assets[class] = c.AssetID
	}

	return book.NewTreasury(balances, assets, cfg.Settlement.AssetID)
}

func provideSeriesFactory(balances core.IBalanceStore, seriesStore core.ISeriesStore, client *redis.Client) func(s *core.Series) core.IFYToken {
	rate := provideOracle("rate", cfg.Settlement.Rate, client)
	chi := provideOracle("chi", cfg.Settlement.Chi, client)

	return func(s *core.Series) core.IFYToken {
		return book.NewFYToken(s, balances, seriesStore, rate, chi)
	}
}

func provideAuthorizer(delegates core.IDelegateStore) core.IAuthorizer {
	return auth.New(cfg.App.Owner, cfg.Admins, delegates)
}

func provideDelegateService(delegates core.IDelegateStore) core.IDelegateService {
	return auth.NewDelegateService(delegates)
}

// system the dealer and the pieces wired around it
type system struct {
	dealer    *dealer.Dealer
	delegates core.IDelegateService
	events    core.IEventStore
	series    core.ISeriesStore
	newSeries func(s *core.Series) core.IFYToken
}

// provideSystem build the dealer on top of the database and restore its state
func provideSystem(ctx context.Context, database *db.DB) (*system, error) {
	client := provideRedis()

	balances := provideBalanceStore(database)
	seriesStore := provideSeriesStore(database)
	ledgerStore := provideLedgerStore(database, providePropertyStore(database))
	delegates := provideDelegateStore(database)
	newSeries := provideSeriesFactory(balances, seriesStore, client)

	d := dealer.New(
		dealer.Config{DepositAmount: cfg.Deposit.Amount},
		provideTreasury(balances),
		provideOracles(client),
		book.NewDepositToken(balances, cfg.Deposit.AssetID),
		provideAuthorizer(delegates),
		ledgerStore,
	)

	snapshot, err := loadSnapshot(ctx, ledgerStore, seriesStore, newSeries)
	if err != nil {
		return nil, err
	}

	if err := d.Restore(ctx, snapshot); err != nil {
		return nil, err
	}

	return &system{
		dealer:    d,
		delegates: provideDelegateService(delegates),
		events:    provideEventStore(database),
		series:    seriesStore,
		newSeries: newSeries,
	}, nil
}

func loadSnapshot(
	ctx context.Context,
	ledgerStore core.ILedgerStore,
	seriesStore core.ISeriesStore,
	newSeries func(s *core.Series) core.IFYToken,
) (*dealer.Snapshot, error) {
	var snapshot dealer.Snapshot

	all, err := seriesStore.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}

	for _, s := range all {
		snapshot.Series = append(snapshot.Series, newSeries(s))
	}

	if snapshot.Posted, err = ledgerStore.ListPosted(ctx); err != nil {
		return nil, fmt.Errorf("list posted: %w", err)
	}

	if snapshot.Debts, err = ledgerStore.ListDebts(ctx); err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}

	if snapshot.Live, err = ledgerStore.IsLive(ctx); err != nil {
		return nil, fmt.Errorf("load liveness: %w", err)
	}

	return &snapshot, nil
}
