package dealer

import (
	"context"
	"errors"

	"dealer/core"

	"github.com/shopspring/decimal"
)

var errFake = errors.New("fake collaborator failure")

type treasury struct {
	custody    map[core.CollateralClass]decimal.Decimal
	settlement decimal.Decimal

	failReceive bool
	failRelease bool
}

func newTreasury() *treasury {
	return &treasury{custody: map[core.CollateralClass]decimal.Decimal{}}
}

func (t *treasury) Receive(_ context.Context, class core.CollateralClass, _ string, amount decimal.Decimal) error {
	if t.failReceive {
		return errFake
	}

	t.custody[class] = t.custody[class].Add(amount)
	return nil
}

func (t *treasury) Release(_ context.Context, class core.CollateralClass, _ string, amount decimal.Decimal) error {
	if t.failRelease {
		return errFake
	}

	t.custody[class] = t.custody[class].Sub(amount)
	return nil
}

func (t *treasury) ReceiveSettlement(_ context.Context, _ string, amount decimal.Decimal) error {
	if t.failReceive {
		return errFake
	}

	t.settlement = t.settlement.Add(amount)
	return nil
}

func (t *treasury) ReleaseSettlement(_ context.Context, _ string, amount decimal.Decimal) error {
	t.settlement = t.settlement.Sub(amount)
	return nil
}

type oracle struct {
	price decimal.Decimal
}

func (o *oracle) Price(context.Context) (decimal.Decimal, error) {
	return o.price, nil
}

type fyToken struct {
	maturity      int64
	matured       bool
	rateGrowth    decimal.Decimal
	accrualGrowth decimal.Decimal
	balances      map[string]decimal.Decimal

	failMint bool
}

func newFYToken(maturity int64) *fyToken {
	return &fyToken{
		maturity:      maturity,
		rateGrowth:    decimal.New(1, 0),
		accrualGrowth: decimal.New(1, 0),
		balances:      map[string]decimal.Decimal{},
	}
}

func (f *fyToken) Maturity() int64 { return f.maturity }

func (f *fyToken) IsMatured(context.Context) (bool, error) { return f.matured, nil }

func (f *fyToken) RateGrowth(context.Context) (decimal.Decimal, error) { return f.rateGrowth, nil }

func (f *fyToken) AccrualGrowth(context.Context) (decimal.Decimal, error) {
	return f.accrualGrowth, nil
}

func (f *fyToken) Mint(_ context.Context, to string, amount decimal.Decimal) error {
	if f.failMint {
		return errFake
	}

	f.balances[to] = f.balances[to].Add(amount)
	return nil
}

func (f *fyToken) Burn(_ context.Context, from string, amount decimal.Decimal) error {
	if f.balances[from].LessThan(amount) {
		return errFake
	}

	f.balances[from] = f.balances[from].Sub(amount)
	return nil
}

// deposit counts outstanding deposits per payer
type deposit struct {
	locked map[string]int
	calls  int
}

func newDeposit() *deposit {
	return &deposit{locked: map[string]int{}}
}

func (d *deposit) Lock(_ context.Context, from string, _ decimal.Decimal) error {
	d.calls++
	d.locked[from]++
	return nil
}

func (d *deposit) Return(_ context.Context, to string, _ decimal.Decimal) error {
	d.calls++
	d.locked[to]--
	return nil
}

type authorizer struct {
	owner      string
	privileged map[string]bool
	delegates  map[[2]string]bool
}

func (a *authorizer) IsOwner(_ context.Context, caller string) bool {
	return caller == a.owner
}

func (a *authorizer) IsPrivileged(_ context.Context, caller string) bool {
	return a.privileged[caller]
}

func (a *authorizer) IsHolderOrDelegate(_ context.Context, caller, account string) bool {
	return caller == account || a.delegates[[2]string{account, caller}]
}

type ledgerStore struct {
	changesets []*core.Changeset
	fail       bool
}

func (s *ledgerStore) Commit(_ context.Context, cs *core.Changeset) error {
	if s.fail {
		return errFake
	}

	s.changesets = append(s.changesets, cs)
	return nil
}

func (s *ledgerStore) ListPosted(context.Context) ([]*core.PostedBalance, error) { return nil, nil }

func (s *ledgerStore) ListDebts(context.Context) ([]*core.DebtBalance, error) { return nil, nil }

func (s *ledgerStore) IsLive(context.Context) (bool, error) { return true, nil }
