package ledger

import (
	"errors"
	"fmt"
	"sort"

	"dealer/core"
	"dealer/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	// ErrJournalOpen Begin called while another journal is open
	ErrJournalOpen = errors.New("ledger: journal already open")
	// ErrNoJournal Commit or Rollback without Begin
	ErrNoJournal = errors.New("ledger: no open journal")
)

type postedKey struct {
	class   core.CollateralClass
	account string
}

type seriesKey struct {
	class    core.CollateralClass
	maturity int64
}

type debtKey struct {
	class    core.CollateralClass
	maturity int64
	account  string
}

// Ledger posted collateral and synthetic debt per account, plus the system
// totals mirroring them. Zero balances are not stored.
type Ledger struct {
	posted       map[postedKey]decimal.Decimal
	debt         map[debtKey]decimal.Decimal
	systemPosted map[core.CollateralClass]decimal.Decimal
	systemDebt   map[seriesKey]decimal.Decimal

	journal *journal
}

// New empty ledger
func New() *Ledger {
	return &Ledger{
		posted:       make(map[postedKey]decimal.Decimal),
		debt:         make(map[debtKey]decimal.Decimal),
		systemPosted: make(map[core.CollateralClass]decimal.Decimal),
		systemDebt:   make(map[seriesKey]decimal.Decimal),
	}
}

// Posted collateral posted by account
func (l *Ledger) Posted(class core.CollateralClass, account string) decimal.Decimal {
	return l.posted[postedKey{class, account}]
}

// Debt synthetic debt of account in the series
func (l *Ledger) Debt(class core.CollateralClass, maturity int64, account string) decimal.Decimal {
	return l.debt[debtKey{class, maturity, account}]
}

// SystemPosted total collateral posted of class
func (l *Ledger) SystemPosted(class core.CollateralClass) decimal.Decimal {
	return l.systemPosted[class]
}

// SystemDebt total synthetic debt of class in the series
func (l *Ledger) SystemDebt(class core.CollateralClass, maturity int64) decimal.Decimal {
	return l.systemDebt[seriesKey{class, maturity}]
}

// AddPosted increase posted collateral, returns the new balance
func (l *Ledger) AddPosted(class core.CollateralClass, account string, amount decimal.Decimal) (decimal.Decimal, error) {
	pk := postedKey{class, account}
	balance, err := number.Add(l.posted[pk], amount)
	if err != nil {
		return decimal.Zero, err
	}

	total, err := number.Add(l.systemPosted[class], amount)
	if err != nil {
		return decimal.Zero, err
	}

	l.setPosted(pk, balance)
	l.setSystemPosted(class, total)
	return balance, nil
}

// SubPosted decrease posted collateral, fails with core.ErrInsufficientBalance
// without touching anything when amount exceeds the balance
func (l *Ledger) SubPosted(class core.CollateralClass, account string, amount decimal.Decimal) (decimal.Decimal, error) {
	pk := postedKey{class, account}
	balance, err := number.Sub(l.posted[pk], amount)
	if err != nil {
		return decimal.Zero, err
	}

	total, err := number.Sub(l.systemPosted[class], amount)
	if err != nil {
		return decimal.Zero, err
	}

	l.setPosted(pk, balance)
	l.setSystemPosted(class, total)
	return balance, nil
}

// ZeroPosted clear posted collateral, returns the prior balance
func (l *Ledger) ZeroPosted(class core.CollateralClass, account string) (decimal.Decimal, error) {
	prior := l.Posted(class, account)
	if _, err := l.SubPosted(class, account, prior); err != nil {
		return decimal.Zero, err
	}

	return prior, nil
}

// AddDebt increase debt, returns the new balance
func (l *Ledger) AddDebt(class core.CollateralClass, maturity int64, account string, amount decimal.Decimal) (decimal.Decimal, error) {
	dk := debtKey{class, maturity, account}
	sk := seriesKey{class, maturity}
	balance, err := number.Add(l.debt[dk], amount)
	if err != nil {
		return decimal.Zero, err
	}

	total, err := number.Add(l.systemDebt[sk], amount)
	if err != nil {
		return decimal.Zero, err
	}

	l.setDebt(dk, balance)
	l.setSystemDebt(sk, total)
	return balance, nil
}

// SubDebt decrease debt, fails with core.ErrInsufficientBalance without
// touching anything when amount exceeds the balance
func (l *Ledger) SubDebt(class core.CollateralClass, maturity int64, account string, amount decimal.Decimal) (decimal.Decimal, error) {
	dk := debtKey{class, maturity, account}
	sk := seriesKey{class, maturity}
	balance, err := number.Sub(l.debt[dk], amount)
	if err != nil {
		return decimal.Zero, err
	}

	total, err := number.Sub(l.systemDebt[sk], amount)
	if err != nil {
		return decimal.Zero, err
	}

	l.setDebt(dk, balance)
	l.setSystemDebt(sk, total)
	return balance, nil
}

// ZeroDebt clear debt, returns the prior balance
func (l *Ledger) ZeroDebt(class core.CollateralClass, maturity int64, account string) (decimal.Decimal, error) {
	prior := l.Debt(class, maturity, account)
	if _, err := l.SubDebt(class, maturity, account, prior); err != nil {
		return decimal.Zero, err
	}

	return prior, nil
}

// Restore load persisted balances into an empty ledger and rebuild the totals
func (l *Ledger) Restore(posted []*core.PostedBalance, debts []*core.DebtBalance) error {
	if len(l.posted) > 0 || len(l.debt) > 0 {
		return errors.New("ledger: restore into non-empty ledger")
	}

	for _, p := range posted {
		if _, err := l.AddPosted(p.Class, p.Account, p.Amount); err != nil {
			return fmt.Errorf("restore posted %s/%s: %w", p.Class, p.Account, err)
		}
	}

	for _, d := range debts {
		if _, err := l.AddDebt(d.Class, d.Maturity, d.Account, d.Amount); err != nil {
			return fmt.Errorf("restore debt %s/%d/%s: %w", d.Class, d.Maturity, d.Account, err)
		}
	}

	return nil
}

// Audit verify every system total equals the sum of the account balances
func (l *Ledger) Audit() error {
	posted := make(map[core.CollateralClass]decimal.Decimal)
	for k, v := range l.posted {
		if v.IsNegative() {
			return fmt.Errorf("ledger: negative posted %s/%s: %s", k.class, k.account, v)
		}
		posted[k.class] = posted[k.class].Add(v)
	}

	debts := make(map[seriesKey]decimal.Decimal)
	for k, v := range l.debt {
		if v.IsNegative() {
			return fmt.Errorf("ledger: negative debt %s/%d/%s: %s", k.class, k.maturity, k.account, v)
		}
		sk := seriesKey{k.class, k.maturity}
		debts[sk] = debts[sk].Add(v)
	}

	for class, total := range l.systemPosted {
		if !total.Equal(posted[class]) {
			return fmt.Errorf("ledger: system posted %s is %s, accounts sum to %s", class, total, posted[class])
		}
	}
	for class, sum := range posted {
		if !sum.Equal(l.systemPosted[class]) {
			return fmt.Errorf("ledger: system posted %s is %s, accounts sum to %s", class, l.systemPosted[class], sum)
		}
	}

	for sk, total := range l.systemDebt {
		if !total.Equal(debts[sk]) {
			return fmt.Errorf("ledger: system debt %s/%d is %s, accounts sum to %s", sk.class, sk.maturity, total, debts[sk])
		}
	}
	for sk, sum := range debts {
		if !sum.Equal(l.systemDebt[sk]) {
			return fmt.Errorf("ledger: system debt %s/%d is %s, accounts sum to %s", sk.class, sk.maturity, l.systemDebt[sk], sum)
		}
	}

	return nil
}

// Accounts accounts with a non-empty posted or debt slot of class, sorted
func (l *Ledger) Accounts(class core.CollateralClass) []string {
	seen := make(map[string]bool)
	for k := range l.posted {
		if k.class == class {
			seen[k.account] = true
		}
	}
	for k := range l.debt {
		if k.class == class {
			seen[k.account] = true
		}
	}

	accounts := make([]string, 0, len(seen))
	for a := range seen {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)
	return accounts
}

// Slots number of non-empty posted and debt slots held by account
func (l *Ledger) Slots(account string) int {
	n := 0
	for k := range l.posted {
		if k.account == account {
			n++
		}
	}
	for k := range l.debt {
		if k.account == account {
			n++
		}
	}

	return n
}

func (l *Ledger) setPosted(k postedKey, v decimal.Decimal) {
	if l.journal != nil {
		l.journal.touchPosted(k, l.posted)
	}

	if v.IsZero() {
		delete(l.posted, k)
		return
	}
	l.posted[k] = v
}

func (l *Ledger) setSystemPosted(k core.CollateralClass, v decimal.Decimal) {
	if l.journal != nil {
		l.journal.touchSystemPosted(k, l.systemPosted)
	}

	if v.IsZero() {
		delete(l.systemPosted, k)
		return
	}
	l.systemPosted[k] = v
}

func (l *Ledger) setDebt(k debtKey, v decimal.Decimal) {
	if l.journal != nil {
		l.journal.touchDebt(k, l.debt)
	}

	if v.IsZero() {
		delete(l.debt, k)
		return
	}
	l.debt[k] = v
}

func (l *Ledger) setSystemDebt(k seriesKey, v decimal.Decimal) {
	if l.journal != nil {
		l.journal.touchSystemDebt(k, l.systemDebt)
	}

	if v.IsZero() {
		delete(l.systemDebt, k)
		return
	}
	l.systemDebt[k] = v
}
