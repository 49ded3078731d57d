package dealer

import (
	"context"
	"fmt"
	"sync"

	"dealer/core"
	"dealer/internal/ledger"
	"dealer/internal/series"
	"dealer/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Config dealer settings
type Config struct {
	// DepositAmount incentive deposit locked per open slot
	DepositAmount decimal.Decimal
}

// Dealer collateralized debt ledger. Every public operation holds the dealer
// lock for its whole duration and either applies all of its changes or none.
type Dealer struct {
	mu   sync.Mutex
	live bool

	ledger   *ledger.Ledger
	registry *series.Registry

	treasury core.ITreasury
	oracles  map[core.CollateralClass]core.IOracle
	deposit  core.IDepositToken
	auth     core.IAuthorizer
	store    core.ILedgerStore

	depositAmount decimal.Decimal
}

// New new dealer, store may be nil to keep the ledger in memory only
func New(
	cfg Config,
	treasury core.ITreasury,
	oracles map[core.CollateralClass]core.IOracle,
	deposit core.IDepositToken,
	auth core.IAuthorizer,
	store core.ILedgerStore,
) *Dealer {
	return &Dealer{
		live:          true,
		ledger:        ledger.New(),
		registry:      series.New(),
		treasury:      treasury,
		oracles:       oracles,
		deposit:       deposit,
		auth:          auth,
		store:         store,
		depositAmount: cfg.DepositAmount,
	}
}

// Snapshot persisted state to restore on boot
type Snapshot struct {
	Series []core.IFYToken
	Posted []*core.PostedBalance
	Debts  []*core.DebtBalance
	Live   bool
}

// Restore load persisted state into a fresh dealer
func (d *Dealer) Restore(ctx context.Context, snapshot *Snapshot) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, s := range snapshot.Series {
		if err := d.registry.Register(s); err != nil {
			return fmt.Errorf("restore series %d: %w", s.Maturity(), err)
		}
	}

	if err := d.ledger.Restore(snapshot.Posted, snapshot.Debts); err != nil {
		return err
	}

	d.live = snapshot.Live
	logger.FromContext(ctx).Infof("restored %d series, %d posted and %d debt balances, live: %v",
		len(snapshot.Series), len(snapshot.Posted), len(snapshot.Debts), d.live)
	return nil
}

// RegisterSeries register a new series, owner only
func (d *Dealer) RegisterSeries(ctx context.Context, caller string, handle core.IFYToken) error {
	return d.exec(ctx, "register_series", caller, func(u *unit) error {
		if !d.live {
			return core.ErrSystemShutDown
		}

		if !d.auth.IsOwner(u.ctx, caller) {
			return core.ErrNotAuthorized
		}

		if err := d.registry.Check(handle); err != nil {
			return err
		}

		series := &core.Series{Maturity: handle.Maturity()}
		if a, ok := handle.(interface{ AssetID() string }); ok {
			series.AssetID = a.AssetID()
		}

		u.series = append(u.series, series)
		u.onCommit = append(u.onCommit, func() {
			// checked above under the same lock
			_ = d.registry.Register(handle)
		})
		return nil
	})
}

// Shutdown clear the liveness flag, it is never set again
func (d *Dealer) Shutdown(ctx context.Context, caller string) error {
	return d.exec(ctx, "shutdown", caller, func(u *unit) error {
		if !d.auth.IsOwner(u.ctx, caller) && !d.auth.IsPrivileged(u.ctx, caller) {
			return core.ErrNotAuthorized
		}

		if !d.live {
			return core.ErrSystemShutDown
		}

		u.shutdown = true
		u.onCommit = append(u.onCommit, func() {
			d.live = false
		})
		return nil
	})
}

// Live is the system live
func (d *Dealer) Live() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.live
}

// IsRegistered is the series registered
func (d *Dealer) IsRegistered(maturity int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.registry.IsRegistered(maturity)
}

// SeriesList registered series in registration order
func (d *Dealer) SeriesList(ctx context.Context) ([]*core.SeriesView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	views := make([]*core.SeriesView, 0, d.registry.Len())
	for _, maturity := range d.registry.Enumerate() {
		handle, _ := d.registry.Get(maturity)
		matured, err := handle.IsMatured(ctx)
		if err != nil {
			return nil, err
		}

		view := &core.SeriesView{
			Maturity:      maturity,
			Matured:       matured,
			RateGrowth:    decimal.New(1, 0),
			AccrualGrowth: decimal.New(1, 0),
		}

		if matured {
			if view.RateGrowth, err = handle.RateGrowth(ctx); err != nil {
				return nil, err
			}
			if view.AccrualGrowth, err = handle.AccrualGrowth(ctx); err != nil {
				return nil, err
			}
		}

		views = append(views, view)
	}

	return views, nil
}

// Posted collateral posted by account
func (d *Dealer) Posted(class core.CollateralClass, account string) decimal.Decimal {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.ledger.Posted(class, account)
}

// Debt synthetic debt of account in the series
func (d *Dealer) Debt(class core.CollateralClass, maturity int64, account string) decimal.Decimal {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.ledger.Debt(class, maturity, account)
}

// SystemPosted total posted collateral of class
func (d *Dealer) SystemPosted(class core.CollateralClass) decimal.Decimal {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.ledger.SystemPosted(class)
}

// SystemDebt total synthetic debt of class in the series
func (d *Dealer) SystemDebt(class core.CollateralClass, maturity int64) decimal.Decimal {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.ledger.SystemDebt(class, maturity)
}

// Slots non-empty posted and debt slots of account
func (d *Dealer) Slots(account string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.ledger.Slots(account)
}

// Audit verify the system totals against the account balances
func (d *Dealer) Audit(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.ledger.Audit()
}

// requireLive common preconditions of the position operations
func (d *Dealer) requireLive(class core.CollateralClass) error {
	if !d.live {
		return core.ErrSystemShutDown
	}

	if !class.Valid() {
		return core.ErrUnrecognizedCollateral
	}

	return nil
}

func (d *Dealer) requireHolder(ctx context.Context, caller, account string) error {
	if !d.auth.IsHolderOrDelegate(ctx, caller, account) {
		return core.ErrNotAuthorized
	}

	return nil
}

func (d *Dealer) requirePrivileged(ctx context.Context, caller string) error {
	if !d.auth.IsPrivileged(ctx, caller) {
		return core.ErrNotAuthorized
	}

	return nil
}

// requireAmount amounts are non-negative and held at wad precision
func requireAmount(amount decimal.Decimal) error {
	if amount.IsNegative() || !amount.Equal(number.Wad(amount)) {
		return core.ErrInvalidAmount
	}

	return nil
}

func transferFailed(err error) error {
	return fmt.Errorf("%w: %v", core.ErrTransferFailed, err)
}
