package dealer

import (
	"context"
	"errors"
	"testing"

	"dealer/core"
	"dealer/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner = "8017d200-7870-4b82-b53f-74bae1d2dad7"
	admin = "e9a5b807-fa8b-455c-8dfa-b189d28310ff"
	alice = "2d1d9d06-3ed0-4a9d-b3b3-6b0d2b1c42a1"
	bob   = "b21b3d2a-9f3e-4d5e-8a42-36a1f6bfe7b4"
)

type fixture struct {
	*Dealer

	treasury *treasury
	deposit  *deposit
	auth     *authorizer
	store    *ledgerStore
	series   map[int64]*fyToken
}

func setup(t *testing.T, maturities ...int64) *fixture {
	f := &fixture{
		treasury: newTreasury(),
		deposit:  newDeposit(),
		auth: &authorizer{
			owner:      owner,
			privileged: map[string]bool{admin: true},
			delegates:  map[[2]string]bool{},
		},
		store:  &ledgerStore{},
		series: map[int64]*fyToken{},
	}

	oracles := map[core.CollateralClass]core.IOracle{
		core.WETH: &oracle{price: number.Decimal("1.5")},
		core.CHAI: &oracle{price: number.Decimal("1")},
	}

	f.Dealer = New(Config{DepositAmount: number.Decimal("0.01")}, f.treasury, oracles, f.deposit, f.auth, f.store)

	ctx := context.Background()
	for _, maturity := range maturities {
		handle := newFYToken(maturity)
		require.Nil(t, f.RegisterSeries(ctx, owner, handle))
		f.series[maturity] = handle
	}

	return f
}

func d(v string) decimal.Decimal {
	return number.Decimal(v)
}

func assertDecimal(t *testing.T, expect string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expect).Equal(actual), "expect %s, got %s", expect, actual)
}

func TestBorrowUpToBorrowingPower(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("100")))

	safe, err := f.IsSafe(ctx, core.WETH, alice)
	require.Nil(t, err)
	assert.True(t, safe)

	power, err := f.BorrowingPower(ctx, core.WETH, alice)
	require.Nil(t, err)
	assertDecimal(t, "150", power)

	err = f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("60"))
	assert.Equal(t, core.ErrUndercollateralized, err)

	assertDecimal(t, "100", f.Debt(core.WETH, 1000, alice))
	assertDecimal(t, "100", f.SystemDebt(core.WETH, 1000))
	assertDecimal(t, "100", f.series[1000].balances[alice])
	assert.Equal(t, 2, f.deposit.locked[alice])
	assert.Nil(t, f.Audit(ctx))
}

func TestBorrowFailureReturnsDeposit(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	err := f.Borrow(ctx, bob, core.WETH, 1000, bob, bob, d("10"))
	assert.Equal(t, core.ErrUndercollateralized, err)

	// locked before the safety check, compensated on failure
	assert.Equal(t, 2, f.deposit.calls)
	assert.Equal(t, 0, f.deposit.locked[bob])
	assert.True(t, f.Debt(core.WETH, 1000, bob).IsZero())
	assert.True(t, f.SystemDebt(core.WETH, 1000).IsZero())
}

func TestBorrowSeries(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)
	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))

	assert.Equal(t, core.ErrUnrecognizedSeries, f.Borrow(ctx, alice, core.WETH, 999, alice, alice, d("1")))

	f.series[1000].matured = true
	assert.Equal(t, core.ErrSeriesMatured, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("1")))
}

func TestBorrowMintFailure(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)
	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))

	f.series[1000].failMint = true
	err := f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("10"))
	assert.True(t, errors.Is(err, core.ErrTransferFailed))
	assert.True(t, f.Debt(core.WETH, 1000, alice).IsZero())
	assert.Equal(t, 1, f.deposit.locked[alice])
}

func TestPost(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, bob, d("10")))
	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, bob, d("5")))

	assertDecimal(t, "15", f.Posted(core.WETH, bob))
	assertDecimal(t, "15", f.SystemPosted(core.WETH))
	assertDecimal(t, "15", f.treasury.custody[core.WETH])
	// paid by the caller, once for the new slot
	assert.Equal(t, 1, f.deposit.locked[alice])

	require.Len(t, f.store.changesets, 2)
	cs := f.store.changesets[1]
	require.Len(t, cs.Posted, 1)
	assert.Equal(t, bob, cs.Posted[0].Account)
	assertDecimal(t, "15", cs.Posted[0].Amount)
	require.Len(t, cs.Events, 1)
	assert.Equal(t, core.EventPosted, cs.Events[0].Type)
	assertDecimal(t, "5", cs.Events[0].Change)
	assertDecimal(t, "15", cs.Events[0].Total)
}

func TestPostValidation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	assert.Equal(t, core.ErrUnrecognizedCollateral, f.Post(ctx, alice, "DAI", alice, alice, d("1")))
	assert.Equal(t, core.ErrInvalidAmount, f.Post(ctx, alice, core.WETH, alice, alice, d("-1")))
	assert.Equal(t, core.ErrNotAuthorized, f.Post(ctx, bob, core.WETH, alice, alice, d("1")))

	f.auth.delegates[[2]string{alice, bob}] = true
	assert.Nil(t, f.Post(ctx, bob, core.WETH, alice, alice, d("1")))

	f.treasury.failReceive = true
	err := f.Post(ctx, alice, core.WETH, alice, alice, d("1"))
	assert.True(t, errors.Is(err, core.ErrTransferFailed))
	assertDecimal(t, "1", f.Posted(core.WETH, alice))
}

func TestPostStoreFailure(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	f.store.fail = true
	assert.NotNil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("10")))

	assert.True(t, f.Posted(core.WETH, alice).IsZero())
	assert.True(t, f.treasury.custody[core.WETH].IsZero())
	assert.Equal(t, 0, f.deposit.locked[alice])
	assert.Equal(t, 0, f.Slots(alice))
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("100")))

	t.Run("undercollateralized", func(t *testing.T) {
		err := f.Withdraw(ctx, alice, core.WETH, alice, bob, d("40"))
		assert.Equal(t, core.ErrUndercollateralized, err)
		assertDecimal(t, "100", f.Posted(core.WETH, alice))
		assertDecimal(t, "100", f.SystemPosted(core.WETH))
		assertDecimal(t, "100", f.treasury.custody[core.WETH])
	})

	t.Run("insufficient balance", func(t *testing.T) {
		err := f.Withdraw(ctx, alice, core.WETH, alice, bob, d("101"))
		assert.Equal(t, core.ErrInsufficientBalance, err)
		assertDecimal(t, "100", f.Posted(core.WETH, alice))
	})

	t.Run("release failure", func(t *testing.T) {
		f.treasury.failRelease = true
		defer func() { f.treasury.failRelease = false }()

		err := f.Withdraw(ctx, alice, core.WETH, alice, bob, d("10"))
		assert.True(t, errors.Is(err, core.ErrTransferFailed))
		assertDecimal(t, "100", f.Posted(core.WETH, alice))
	})

	t.Run("safe", func(t *testing.T) {
		require.Nil(t, f.Withdraw(ctx, alice, core.WETH, alice, bob, d("30")))
		assertDecimal(t, "70", f.Posted(core.WETH, alice))
		assertDecimal(t, "70", f.treasury.custody[core.WETH])

		cs := f.store.changesets[len(f.store.changesets)-1]
		require.Len(t, cs.Events, 1)
		assert.Equal(t, alice, cs.Events[0].Account)
		assertDecimal(t, "-30", cs.Events[0].Change)
		assertDecimal(t, "70", cs.Events[0].Total)
	})

	t.Run("empty slot", func(t *testing.T) {
		repaid, err := f.RepaySynthetic(ctx, alice, core.WETH, 1000, alice, alice, d("100"))
		require.Nil(t, err)
		assertDecimal(t, "100", repaid)

		require.Nil(t, f.Withdraw(ctx, alice, core.WETH, alice, alice, d("70")))
		assert.True(t, f.Posted(core.WETH, alice).IsZero())
		assert.Equal(t, 0, f.deposit.locked[alice])
		assert.Equal(t, 0, f.Slots(alice))
	})

	assert.Nil(t, f.Audit(ctx))
}

func TestRepaySynthetic(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("50")))

	repaid, err := f.RepaySynthetic(ctx, alice, core.WETH, 1000, alice, alice, d("20"))
	require.Nil(t, err)
	assertDecimal(t, "20", repaid)
	assertDecimal(t, "30", f.Debt(core.WETH, 1000, alice))
	assertDecimal(t, "30", f.series[1000].balances[alice])

	// capped at the debt, the excess is left with the payer
	f.series[1000].balances[alice] = d("80")
	repaid, err = f.RepaySynthetic(ctx, alice, core.WETH, 1000, alice, alice, d("80"))
	require.Nil(t, err)
	assertDecimal(t, "30", repaid)
	assert.True(t, f.Debt(core.WETH, 1000, alice).IsZero())
	assertDecimal(t, "50", f.series[1000].balances[alice])
	assert.Equal(t, 1, f.deposit.locked[alice])

	repaid, err = f.RepaySynthetic(ctx, alice, core.WETH, 1000, alice, alice, d("10"))
	require.Nil(t, err)
	assert.True(t, repaid.IsZero())
	assert.Equal(t, 1, f.deposit.locked[alice])
	assert.Nil(t, f.Audit(ctx))
}

func TestRepaySyntheticBurnFailure(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, bob, d("50")))

	// alice holds none of the synthetic asset
	_, err := f.RepaySynthetic(ctx, alice, core.WETH, 1000, alice, alice, d("50"))
	assert.True(t, errors.Is(err, core.ErrTransferFailed))
	assertDecimal(t, "50", f.Debt(core.WETH, 1000, alice))

	// bob repays alice's debt
	repaid, err := f.RepaySynthetic(ctx, bob, core.WETH, 1000, bob, alice, d("50"))
	require.Nil(t, err)
	assertDecimal(t, "50", repaid)
	assert.True(t, f.Debt(core.WETH, 1000, alice).IsZero())
	// the deposit goes back to whoever emptied the slot
	assert.Equal(t, 2, f.deposit.locked[alice])
	assert.Equal(t, -1, f.deposit.locked[bob])
}

func TestRepaySettlement(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("40")))

	f.series[1000].matured = true
	f.series[1000].rateGrowth = d("1.5")

	value, err := f.TotalDebtValue(ctx, core.WETH, alice)
	require.Nil(t, err)
	assertDecimal(t, "60", value)

	repaid, err := f.RepaySettlement(ctx, alice, core.WETH, 1000, alice, alice, d("30"))
	require.Nil(t, err)
	assertDecimal(t, "30", repaid)
	assertDecimal(t, "20", f.Debt(core.WETH, 1000, alice))

	repaid, err = f.RepaySettlement(ctx, alice, core.WETH, 1000, alice, alice, d("100"))
	require.Nil(t, err)
	assertDecimal(t, "30", repaid)
	assert.True(t, f.Debt(core.WETH, 1000, alice).IsZero())
	assertDecimal(t, "60", f.treasury.settlement)
	assert.Equal(t, 1, f.deposit.locked[alice])

	f.treasury.failReceive = true
	_, err = f.RepaySettlement(ctx, alice, core.WETH, 1000, alice, alice, d("1"))
	assert.True(t, errors.Is(err, core.ErrTransferFailed))
}

func TestRepaySettlementWholeDebt(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("33")))

	f.series[1000].matured = true
	f.series[1000].rateGrowth = d("1.333333333333333333333333333")

	value, err := f.ToSettlementValue(ctx, core.WETH, 1000, d("33"))
	require.Nil(t, err)

	repaid, err := f.RepaySettlement(ctx, alice, core.WETH, 1000, alice, alice, value)
	require.Nil(t, err)
	assert.True(t, value.Equal(repaid))
	// no dust left behind
	assert.True(t, f.Debt(core.WETH, 1000, alice).IsZero())
	assert.Equal(t, 1, f.Slots(alice))
}

func TestErase(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000, 2000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("40")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 2000, alice, alice, d("20")))

	f.series[1000].matured = true
	f.series[1000].rateGrowth = d("1.25")

	_, _, err := f.Erase(ctx, alice, core.WETH, alice)
	assert.Equal(t, core.ErrNotAuthorized, err)

	collateral, debtValue, err := f.Erase(ctx, admin, core.WETH, alice)
	require.Nil(t, err)
	assertDecimal(t, "100", collateral)
	assertDecimal(t, "70", debtValue)

	assert.True(t, f.Posted(core.WETH, alice).IsZero())
	assert.True(t, f.Debt(core.WETH, 1000, alice).IsZero())
	assert.True(t, f.Debt(core.WETH, 2000, alice).IsZero())
	assert.True(t, f.SystemPosted(core.WETH).IsZero())
	assert.Equal(t, 0, f.Slots(alice))
	// returned to the liquidator
	assert.Equal(t, 3, f.deposit.locked[alice])
	assert.Equal(t, -3, f.deposit.locked[admin])

	cs := f.store.changesets[len(f.store.changesets)-1]
	assert.Len(t, cs.Events, 3)
	assert.Nil(t, f.Audit(ctx))
}

func TestGrab(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000, 2000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("200")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("50")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 2000, alice, alice, d("50")))
	require.Equal(t, 3, f.Slots(alice))

	assert.Equal(t, core.ErrNotAuthorized, f.Grab(ctx, bob, core.WETH, alice, d("80"), d("50")))

	require.Nil(t, f.Grab(ctx, admin, core.WETH, alice, d("80"), d("50")))

	assertDecimal(t, "150", f.Posted(core.WETH, alice))
	assert.True(t, f.Debt(core.WETH, 1000, alice).IsZero())
	assertDecimal(t, "20", f.Debt(core.WETH, 2000, alice))
	assert.Equal(t, 2, f.Slots(alice))
	assert.Equal(t, -1, f.deposit.locked[admin])

	value, err := f.TotalDebtValue(ctx, core.WETH, alice)
	require.Nil(t, err)
	assertDecimal(t, "20", value)
	assert.Nil(t, f.Audit(ctx))
}

func TestGrabMatured(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000, 2000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("200")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("40")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 2000, alice, alice, d("40")))

	f.series[1000].matured = true
	f.series[1000].rateGrowth = d("1.25")

	require.Nil(t, f.Grab(ctx, admin, core.WETH, alice, d("60"), d("200")))

	assert.True(t, f.Posted(core.WETH, alice).IsZero())
	assert.True(t, f.Debt(core.WETH, 1000, alice).IsZero())
	assertDecimal(t, "30", f.Debt(core.WETH, 2000, alice))
	assert.Equal(t, 1, f.Slots(alice))
	assert.Equal(t, -2, f.deposit.locked[admin])
}

func TestGrabInsufficient(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000, 2000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("200")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("50")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 2000, alice, alice, d("50")))

	assert.Equal(t, core.ErrInsufficientDebt, f.Grab(ctx, admin, core.WETH, alice, d("101"), d("50")))
	assert.Equal(t, core.ErrInsufficientBalance, f.Grab(ctx, admin, core.WETH, alice, d("10"), d("201")))

	assertDecimal(t, "200", f.Posted(core.WETH, alice))
	assertDecimal(t, "50", f.Debt(core.WETH, 1000, alice))
	assertDecimal(t, "50", f.Debt(core.WETH, 2000, alice))
	assert.Equal(t, 0, f.deposit.locked[admin])
	assert.Equal(t, 3, f.deposit.locked[alice])
}

func TestShutdown(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("10")))

	assert.Equal(t, core.ErrNotAuthorized, f.Shutdown(ctx, alice))
	require.Nil(t, f.Shutdown(ctx, admin))
	assert.False(t, f.Live())
	assert.True(t, f.store.changesets[len(f.store.changesets)-1].Shutdown)

	cases := map[string]func() error{
		"shutdown": func() error { return f.Shutdown(ctx, owner) },
		"register": func() error { return f.RegisterSeries(ctx, owner, newFYToken(2000)) },
		"post":     func() error { return f.Post(ctx, alice, core.WETH, alice, alice, d("1")) },
		"withdraw": func() error { return f.Withdraw(ctx, alice, core.WETH, alice, alice, d("1")) },
		"borrow":   func() error { return f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("1")) },
		"repay synthetic": func() error {
			_, err := f.RepaySynthetic(ctx, alice, core.WETH, 1000, alice, alice, d("1"))
			return err
		},
		"repay settlement": func() error {
			_, err := f.RepaySettlement(ctx, alice, core.WETH, 1000, alice, alice, d("1"))
			return err
		},
		"erase": func() error {
			_, _, err := f.Erase(ctx, admin, core.WETH, alice)
			return err
		},
		"grab": func() error { return f.Grab(ctx, admin, core.WETH, alice, d("1"), d("1")) },
	}

	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, core.ErrSystemShutDown, fn())
		})
	}

	assertDecimal(t, "100", f.Posted(core.WETH, alice))
	assertDecimal(t, "10", f.Debt(core.WETH, 1000, alice))
}

func TestRegisterSeries(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	assert.Equal(t, core.ErrNotAuthorized, f.RegisterSeries(ctx, admin, newFYToken(2000)))
	assert.Equal(t, core.ErrDuplicateSeries, f.RegisterSeries(ctx, owner, newFYToken(1000)))
	assert.False(t, f.IsRegistered(2000))

	require.Nil(t, f.RegisterSeries(ctx, owner, newFYToken(2000)))
	assert.True(t, f.IsRegistered(2000))

	views, err := f.SeriesList(ctx)
	require.Nil(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(1000), views[0].Maturity)
	assert.Equal(t, int64(2000), views[1].Maturity)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000, 2000)

	f.series[2000].matured = true
	f.series[2000].rateGrowth = d("1.123456789012345678901234567")
	f.series[2000].accrualGrowth = d("1.000000000000000000000000001")

	amounts := []string{"0", "0.000000000000000001", "1", "100", "33.333333333333333333", "123456789.987654321"}
	for _, class := range core.CollateralClasses() {
		for _, maturity := range []int64{1000, 2000} {
			for _, amount := range amounts {
				value, err := f.ToSettlementValue(ctx, class, maturity, d(amount))
				require.Nil(t, err)

				back, err := f.ToSyntheticValue(ctx, class, maturity, value)
				require.Nil(t, err)

				diff := d(amount).Sub(back).Abs()
				assert.True(t, diff.LessThanOrEqual(number.Unit), "%s %d %s: got %s", class, maturity, amount, back)
			}
		}
	}

	_, err := f.ToSettlementValue(ctx, "DAI", 2000, d("1"))
	assert.Equal(t, core.ErrUnsupportedCollateral, err)
	_, err = f.ToSettlementValue(ctx, core.WETH, 3000, d("1"))
	assert.Equal(t, core.ErrUnrecognizedSeries, err)
}

func TestUnsupportedOracle(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)
	delete(f.oracles, core.CHAI)

	require.Nil(t, f.Post(ctx, alice, core.CHAI, alice, alice, d("10")))
	_, err := f.BorrowingPower(ctx, core.CHAI, alice)
	assert.Equal(t, core.ErrUnsupportedCollateral, err)
	assert.Equal(t, core.ErrUnsupportedCollateral, f.Borrow(ctx, alice, core.CHAI, 1000, alice, alice, d("1")))
}

func TestPosition(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000, 2000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 2000, alice, alice, d("60")))

	p, err := f.Position(ctx, core.WETH, alice)
	require.Nil(t, err)
	assertDecimal(t, "100", p.Posted)
	require.Len(t, p.Debts, 1)
	assert.Equal(t, int64(2000), p.Debts[0].Maturity)
	assertDecimal(t, "150", p.BorrowingPower)
	assertDecimal(t, "60", p.TotalDebtValue)
	assert.True(t, p.Safe)
}

// deposits outstanding always match the open slots
func TestDepositBalance(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000, 2000)

	steps := []func() error{
		func() error { return f.Post(ctx, alice, core.WETH, alice, alice, d("100")) },
		func() error { return f.Post(ctx, alice, core.CHAI, alice, alice, d("100")) },
		func() error { return f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("30")) },
		func() error { return f.Borrow(ctx, alice, core.WETH, 2000, alice, alice, d("30")) },
		func() error { return f.Borrow(ctx, alice, core.CHAI, 1000, alice, alice, d("30")) },
		func() error { return f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("500")) },
		func() error {
			_, err := f.RepaySynthetic(ctx, alice, core.WETH, 1000, alice, alice, d("30"))
			return err
		},
		func() error { return f.Withdraw(ctx, alice, core.CHAI, alice, alice, d("100")) },
		func() error {
			_, err := f.RepaySettlement(ctx, alice, core.CHAI, 1000, alice, alice, d("30"))
			return err
		},
		func() error { return f.Withdraw(ctx, alice, core.CHAI, alice, alice, d("100")) },
		func() error { return f.Withdraw(ctx, alice, core.WETH, alice, alice, d("100")) },
	}

	for _, step := range steps {
		_ = step()
		assert.Equal(t, f.Slots(alice), f.deposit.locked[alice])
		require.Nil(t, f.Audit(ctx))
	}

	assert.Equal(t, 2, f.Slots(alice))
}

func TestAmountFinerThanWad(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	dust := d("0.0000000000000000009")

	assert.Equal(t, core.ErrInvalidAmount, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, dust))
	assert.True(t, f.Debt(core.WETH, 1000, alice).IsZero())
	assert.True(t, f.series[1000].balances[alice].IsZero())
	assert.Equal(t, 0, f.Slots(alice))
	assert.Equal(t, 0, f.deposit.calls)

	assert.Equal(t, core.ErrInvalidAmount, f.Post(ctx, alice, core.WETH, alice, alice, d("1.0000000000000000001")))
	assert.True(t, f.Posted(core.WETH, alice).IsZero())

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("10")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("1")))

	assert.Equal(t, core.ErrInvalidAmount, f.Withdraw(ctx, alice, core.WETH, alice, alice, dust))
	_, err := f.RepaySynthetic(ctx, alice, core.WETH, 1000, alice, alice, dust)
	assert.Equal(t, core.ErrInvalidAmount, err)
	_, err = f.RepaySettlement(ctx, alice, core.WETH, 1000, alice, alice, dust)
	assert.Equal(t, core.ErrInvalidAmount, err)
	assert.Equal(t, core.ErrInvalidAmount, f.Grab(ctx, admin, core.WETH, alice, dust, d("0")))
	assert.Equal(t, core.ErrInvalidAmount, f.Grab(ctx, admin, core.WETH, alice, d("0"), dust))

	assertDecimal(t, "10", f.Posted(core.WETH, alice))
	assertDecimal(t, "1", f.Debt(core.WETH, 1000, alice))
	assert.Nil(t, f.Audit(ctx))
}

func TestUnmaturedValueIsExact(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	for _, class := range core.CollateralClasses() {
		for _, amount := range []string{"1.0000000000000000009", "0.0000000000000000009", "42"} {
			value, err := f.ToSettlementValue(ctx, class, 1000, d(amount))
			require.Nil(t, err)
			assertDecimal(t, amount, value)

			back, err := f.ToSyntheticValue(ctx, class, 1000, d(amount))
			require.Nil(t, err)
			assertDecimal(t, amount, back)
		}
	}
}

func TestGrabPartialRoundsUp(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 1000)

	require.Nil(t, f.Post(ctx, alice, core.WETH, alice, alice, d("100")))
	require.Nil(t, f.Borrow(ctx, alice, core.WETH, 1000, alice, alice, d("10")))

	f.series[1000].matured = true
	f.series[1000].rateGrowth = d("3")

	// one unit of value is a third of a synthetic unit, at least one unit is cleared
	require.Nil(t, f.Grab(ctx, admin, core.WETH, alice, number.Unit, d("0")))
	assertDecimal(t, "9.999999999999999999", f.Debt(core.WETH, 1000, alice))

	value, err := f.TotalDebtValue(ctx, core.WETH, alice)
	require.Nil(t, err)
	assertDecimal(t, "29.999999999999999997", value)
	assert.Nil(t, f.Audit(ctx))
}
