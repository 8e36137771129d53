package finctrl

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/etnz/finctrl/date"
	"github.com/shopspring/decimal"
)

// Reports are read-only projections of the ledger. None of them computes
// missing snapshots.

// CurrencyAmount is an amount in a currency.
type CurrencyAmount struct {
	Currency Currency
	Amount   decimal.Decimal
}

// String formats the amount with the currency sign.
func (c CurrencyAmount) String() string { return c.Currency.Format(c.Amount) }

// catalog indexes the currency of every account.
type catalog struct {
	accounts   map[int64]Account
	currencies map[int64]Currency
}

func loadCatalog(ctx context.Context, s Store) (*catalog, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list accounts: %w", err)
	}
	currencies, err := s.Currencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list currencies: %w", err)
	}
	c := &catalog{accounts: make(map[int64]Account), currencies: make(map[int64]Currency)}
	for _, a := range accounts {
		c.accounts[a.ID] = a
	}
	for _, cur := range currencies {
		c.currencies[cur.ID] = cur
	}
	return c, nil
}

// currencyOf returns the currency of an account.
func (c *catalog) currencyOf(accountID int64) (Currency, error) {
	a, ok := c.accounts[accountID]
	if !ok {
		return Currency{}, notFound("account", accountID)
	}
	cur, ok := c.currencies[a.CurrencyID]
	if !ok {
		return Currency{}, notFound("currency", a.CurrencyID)
	}
	return cur, nil
}

// totals accumulates amounts per currency.
type totals map[int64]*CurrencyAmount

func (t totals) add(cur Currency, amount decimal.Decimal) {
	if v, ok := t[cur.ID]; ok {
		v.Amount = v.Amount.Add(amount)
		return
	}
	t[cur.ID] = &CurrencyAmount{Currency: cur, Amount: amount}
}

// list returns the totals ordered by currency code.
func (t totals) list() []CurrencyAmount {
	list := make([]CurrencyAmount, 0, len(t))
	for _, v := range t {
		list = append(list, *v)
	}
	slices.SortFunc(list, func(a, b CurrencyAmount) int { return cmp.Compare(a.Currency.Code, b.Currency.Code) })
	return list
}

// MonthlyReport sums the debits and credits of a month per currency.
// Transfers are not income nor expenses and are left out.
type MonthlyReport struct {
	Range  date.Range
	Credit []CurrencyAmount
	Debit  []CurrencyAmount
}

// NewMonthlyReport computes the report of a month.
func NewMonthlyReport(ctx context.Context, s Store, year int, month time.Month) (*MonthlyReport, error) {
	c, err := loadCatalog(ctx, s)
	if err != nil {
		return nil, err
	}
	r := date.Month(year, month)
	txs, err := s.Transactions(ctx, TransactionFilter{Range: r})
	if err != nil {
		return nil, fmt.Errorf("could not list transactions of %s: %w", r, err)
	}
	credit, debit := totals{}, totals{}
	for _, tx := range txs {
		cur, err := c.currencyOf(tx.AccountID)
		if err != nil {
			return nil, err
		}
		switch tx.Kind {
		case Credit:
			credit.add(cur, tx.Amount)
		case Debit:
			debit.add(cur, tx.Amount)
		}
	}
	return &MonthlyReport{Range: r, Credit: credit.list(), Debit: debit.list()}, nil
}

// BalanceReport sums the recorded balances of all accounts on a day, per currency.
type BalanceReport struct {
	Date   date.Date
	Totals []CurrencyAmount
}

// NewBalanceReport computes the balance report of a day.
func NewBalanceReport(ctx context.Context, s Store, on date.Date) (*BalanceReport, error) {
	c, err := loadCatalog(ctx, s)
	if err != nil {
		return nil, err
	}
	snapshots, err := s.Snapshots(ctx, on)
	if err != nil {
		return nil, fmt.Errorf("could not list balances on %s: %w", on, err)
	}
	sums := totals{}
	for _, snap := range snapshots {
		cur, err := c.currencyOf(snap.AccountID)
		if err != nil {
			return nil, err
		}
		sums.add(cur, snap.Balance)
	}
	return &BalanceReport{Date: on, Totals: sums.list()}, nil
}

// CurrencyAverage is the total of a currency over a span of months and its
// monthly average.
type CurrencyAverage struct {
	CurrencyAmount
	Average decimal.Decimal
}

// AverageOverview sums the debits and credits over whole months and averages
// them per month.
type AverageOverview struct {
	Range        date.Range
	Months       int
	Transactions []Transaction // the debits and credits taken into account
	Credit       []CurrencyAverage
	Debit        []CurrencyAverage
}

// NewAverageOverview computes the overview from the first day of the month
// of from to the last day of the month of to. Transactions of the excluded
// accounts and the excluded transactions are ignored. Averages are truncated
// to two digits.
func NewAverageOverview(ctx context.Context, s Store, from, to date.Date, excludeAccounts, excludeTransactions []int64) (*AverageOverview, error) {
	r := date.NewRange(date.Month(from.Year(), from.Month()).From, date.Month(to.Year(), to.Month()).To)
	months := r.Months()
	if months == 0 {
		return nil, fmt.Errorf("invalid overview: %s is after %s", from.Format("2006-01"), to.Format("2006-01"))
	}
	c, err := loadCatalog(ctx, s)
	if err != nil {
		return nil, err
	}
	txs, err := s.Transactions(ctx, TransactionFilter{Range: r, ExcludeAccounts: excludeAccounts, ExcludeIDs: excludeTransactions})
	if err != nil {
		return nil, fmt.Errorf("could not list transactions of %s: %w", r, err)
	}

	o := &AverageOverview{Range: r, Months: months}
	credit, debit := totals{}, totals{}
	for _, tx := range txs {
		cur, err := c.currencyOf(tx.AccountID)
		if err != nil {
			return nil, err
		}
		switch tx.Kind {
		case Credit:
			credit.add(cur, tx.Amount)
		case Debit:
			debit.add(cur, tx.Amount)
		default:
			continue
		}
		o.Transactions = append(o.Transactions, tx)
	}
	o.Credit = averages(credit, months)
	o.Debit = averages(debit, months)
	return o, nil
}

func averages(t totals, months int) []CurrencyAverage {
	n := decimal.NewFromInt(int64(months))
	var list []CurrencyAverage
	for _, v := range t.list() {
		list = append(list, CurrencyAverage{
			CurrencyAmount: v,
			Average:        v.Amount.DivRound(n, 16).RoundDown(Fraction),
		})
	}
	return list
}

// AccountReport sums the movements of an account between two days and
// compares them to the recorded balances.
type AccountReport struct {
	Account  Account
	Currency Currency
	Start    date.Date
	End      date.Date

	StartBalance decimal.Decimal // zero when StartKnown is false
	StartKnown   bool
	EndBalance   decimal.Decimal // zero when EndKnown is false
	EndKnown     bool

	Credit decimal.Decimal // credits and incoming transfers
	Debit  decimal.Decimal // debits and outgoing transfers
}

// Expected returns the end balance implied by the start balance and the movements.
func (r *AccountReport) Expected() decimal.Decimal {
	return r.StartBalance.Add(r.Credit).Sub(r.Debit)
}

// Consistent reports whether both balances are known and agree with the movements.
func (r *AccountReport) Consistent() bool {
	return r.StartKnown && r.EndKnown && r.Expected().Equal(r.EndBalance)
}

// NewAccountReport computes the report of an account. Movements are the
// transactions recorded from start included to end excluded, which are the
// ones rolled into the balance of end.
func NewAccountReport(ctx context.Context, s Store, accountID int64, start, end date.Date) (*AccountReport, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("invalid report: %s is before %s", end, start)
	}
	a, err := s.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}
	cur, err := s.Currency(ctx, a.CurrencyID)
	if err != nil {
		return nil, err
	}
	r := &AccountReport{Account: a, Currency: cur, Start: start, End: end}

	if snap, ok, err := s.FindSnapshot(ctx, accountID, start); err != nil {
		return nil, fmt.Errorf("could not read balance on %s: %w", start, err)
	} else if ok {
		r.StartBalance, r.StartKnown = snap.Balance, true
	}
	if snap, ok, err := s.FindSnapshot(ctx, accountID, end); err != nil {
		return nil, fmt.Errorf("could not read balance on %s: %w", end, err)
	} else if ok {
		r.EndBalance, r.EndKnown = snap.Balance, true
	}

	if end == start {
		return r, nil
	}
	txs, err := s.Transactions(ctx, TransactionFilter{Range: date.NewRange(start, end.Add(-1)), Accounts: []int64{accountID}})
	if err != nil {
		return nil, fmt.Errorf("could not list transactions: %w", err)
	}
	for _, tx := range txs {
		if tx.Kind.Outflow() {
			r.Debit = r.Debit.Add(tx.Amount)
		} else {
			r.Credit = r.Credit.Add(tx.Amount)
		}
	}
	return r, nil
}
