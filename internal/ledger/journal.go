package ledger

import (
	"sort"

	"dealer/core"

	"github.com/shopspring/decimal"
)

// prior value of an entry, present=false means it was absent
type prior struct {
	value   decimal.Decimal
	present bool
}

// journal keeps the value every entry had before its first change
type journal struct {
	posted       map[postedKey]prior
	debt         map[debtKey]prior
	systemPosted map[core.CollateralClass]prior
	systemDebt   map[seriesKey]prior
}

func newJournal() *journal {
	return &journal{
		posted:       make(map[postedKey]prior),
		debt:         make(map[debtKey]prior),
		systemPosted: make(map[core.CollateralClass]prior),
		systemDebt:   make(map[seriesKey]prior),
	}
}

func (j *journal) touchPosted(k postedKey, m map[postedKey]decimal.Decimal) {
	if _, ok := j.posted[k]; !ok {
		v, present := m[k]
		j.posted[k] = prior{v, present}
	}
}

func (j *journal) touchDebt(k debtKey, m map[debtKey]decimal.Decimal) {
	if _, ok := j.debt[k]; !ok {
		v, present := m[k]
		j.debt[k] = prior{v, present}
	}
}

func (j *journal) touchSystemPosted(k core.CollateralClass, m map[core.CollateralClass]decimal.Decimal) {
	if _, ok := j.systemPosted[k]; !ok {
		v, present := m[k]
		j.systemPosted[k] = prior{v, present}
	}
}

func (j *journal) touchSystemDebt(k seriesKey, m map[seriesKey]decimal.Decimal) {
	if _, ok := j.systemDebt[k]; !ok {
		v, present := m[k]
		j.systemDebt[k] = prior{v, present}
	}
}

func restore[K comparable](m map[K]decimal.Decimal, priors map[K]prior) {
	for k, p := range priors {
		if p.present {
			m[k] = p.value
		} else {
			delete(m, k)
		}
	}
}

// Begin open a journal, every change until Commit or Rollback is recorded
func (l *Ledger) Begin() error {
	if l.journal != nil {
		return ErrJournalOpen
	}

	l.journal = newJournal()
	return nil
}

// Rollback restore every entry changed since Begin
func (l *Ledger) Rollback() error {
	if l.journal == nil {
		return ErrNoJournal
	}

	j := l.journal
	l.journal = nil

	restore(l.posted, j.posted)
	restore(l.debt, j.debt)
	restore(l.systemPosted, j.systemPosted)
	restore(l.systemDebt, j.systemDebt)
	return nil
}

// Commit close the journal and keep the changes
func (l *Ledger) Commit() error {
	if l.journal == nil {
		return ErrNoJournal
	}

	l.journal = nil
	return nil
}

// Changes current balances of every account entry changed since Begin, with
// zero amounts for entries that became empty
func (l *Ledger) Changes() ([]*core.PostedBalance, []*core.DebtBalance) {
	if l.journal == nil {
		return nil, nil
	}

	posted := make([]*core.PostedBalance, 0, len(l.journal.posted))
	for k := range l.journal.posted {
		posted = append(posted, &core.PostedBalance{
			Class:   k.class,
			Account: k.account,
			Amount:  l.posted[k],
		})
	}
	sort.Slice(posted, func(i, j int) bool {
		if posted[i].Class != posted[j].Class {
			return posted[i].Class < posted[j].Class
		}
		return posted[i].Account < posted[j].Account
	})

	debts := make([]*core.DebtBalance, 0, len(l.journal.debt))
	for k := range l.journal.debt {
		debts = append(debts, &core.DebtBalance{
			Class:    k.class,
			Maturity: k.maturity,
			Account:  k.account,
			Amount:   l.debt[k],
		})
	}
	sort.Slice(debts, func(i, j int) bool {
		a, b := debts[i], debts[j]
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		if a.Maturity != b.Maturity {
			return a.Maturity < b.Maturity
		}
		return a.Account < b.Account
	})

	return posted, debts
}
