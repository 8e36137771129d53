package finctrl

import (
	"context"
	"testing"
	"time"

	"github.com/etnz/finctrl/date"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create decimals from const.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// day is a helper for test to create dates from const.
func day(s string) date.Date { return date.MustParse(s) }

// at is a helper for test to create timestamps from const.
func at(s string) time.Time {
	ts, err := ParseTimestamp(s)
	if err != nil {
		panic(err.Error())
	}
	return ts
}

// ledger is a small in-memory ledger with two EUR accounts and one USD account.
type ledger struct {
	*MemStore
	eur, usd             Currency
	main, savings, trips Account
}

func newLedger(t *testing.T) *ledger {
	t.Helper()
	ctx := context.Background()
	l := &ledger{
		MemStore: NewMemStore(),
		eur:      Currency{Name: "Euro", Code: "EUR", Sign: "€"},
		usd:      Currency{Name: "US Dollar", Code: "USD", Sign: "$"},
	}
	for _, c := range []*Currency{&l.eur, &l.usd} {
		if err := l.CreateCurrency(ctx, c); err != nil {
			t.Fatalf("CreateCurrency(%v): %v", c.Code, err)
		}
	}
	l.main = Account{Name: "main", CurrencyID: l.eur.ID}
	l.savings = Account{Name: "savings", CurrencyID: l.eur.ID}
	l.trips = Account{Name: "trips", CurrencyID: l.usd.ID}
	for _, a := range []*Account{&l.main, &l.savings, &l.trips} {
		if err := l.CreateAccount(ctx, a); err != nil {
			t.Fatalf("CreateAccount(%v): %v", a.Name, err)
		}
	}
	return l
}

// balance records a snapshot.
func (l *ledger) balance(t *testing.T, a Account, on, amount string) Snapshot {
	t.Helper()
	s := NewSnapshot(a.ID, day(on), D(amount))
	if err := l.InsertSnapshot(context.Background(), &s); err != nil {
		t.Fatalf("InsertSnapshot(%v, %v): %v", a.Name, on, err)
	}
	return s
}

// tx records a transaction.
func (l *ledger) tx(t *testing.T, a Account, ts string, kind Kind, amount string) Transaction {
	t.Helper()
	tx := Transaction{AccountID: a.ID, Timestamp: at(ts), Kind: kind, Amount: D(amount)}
	if err := l.CreateTransaction(context.Background(), &tx); err != nil {
		t.Fatalf("CreateTransaction(%v, %v): %v", a.Name, ts, err)
	}
	return tx
}

// countingStore counts the snapshots inserted through it.
type countingStore struct {
	Store
	inserts int
}

func (c *countingStore) InsertSnapshot(ctx context.Context, s *Snapshot) error {
	c.inserts++
	return c.Store.InsertSnapshot(ctx, s)
}

// sameSnapshot reports whether a and b are the same recorded snapshot.
func sameSnapshot(a, b Snapshot) bool {
	return a.ID == b.ID && a.AccountID == b.AccountID && a.Date == b.Date && a.Balance.Equal(b.Balance)
}
