package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/finctrl"
	"github.com/etnz/finctrl/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(s string) time.Time {
	ts, err := finctrl.ParseTimestamp(s)
	if err != nil {
		panic(err.Error())
	}
	return ts
}

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "finance.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fixture creates a EUR currency with one account.
func fixture(t *testing.T, s *Store) (finctrl.Currency, finctrl.Account) {
	t.Helper()
	ctx := context.Background()
	eur := finctrl.Currency{Name: "Euro", Code: "EUR", Sign: "€"}
	if err := s.CreateCurrency(ctx, &eur); err != nil {
		t.Fatalf("CreateCurrency() error = %v", err)
	}
	main := finctrl.Account{Name: "main", CurrencyID: eur.ID}
	if err := s.CreateAccount(ctx, &main); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	return eur, main
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance.db")
	ctx := context.Background()
	s, err := Open(ctx, path, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	_, main := fixture(t, s)
	s.Close()

	// migrations are already applied: nothing to do, and data is kept.
	s, err = Open(ctx, path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() again error = %v", err)
	}
	defer s.Close()
	if a, err := s.Account(ctx, main.ID); err != nil || a.Name != "main" {
		t.Errorf("Account() = %+v, %v", a, err)
	}
}

func TestStore_Currencies(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	eur, _ := fixture(t, s)

	if err := s.CreateCurrency(ctx, &finctrl.Currency{Name: "Euro", Code: "EUR"}); err == nil {
		t.Errorf("CreateCurrency() with a duplicate code should fail")
	}
	usd := finctrl.Currency{ID: 10, Name: "US Dollar", Code: "USD"}
	if err := s.CreateCurrency(ctx, &usd); err != nil || usd.ID != 10 {
		t.Fatalf("CreateCurrency() with id = %d, %v", usd.ID, err)
	}
	if err := s.UpdateCurrencySign(ctx, usd.ID, "$"); err != nil {
		t.Fatal(err)
	}
	got, err := s.CurrencyByCode(ctx, "USD")
	if err != nil || got != (finctrl.Currency{ID: 10, Name: "US Dollar", Code: "USD", Sign: "$"}) {
		t.Errorf("CurrencyByCode(USD) = %+v, %v", got, err)
	}
	list, err := s.Currencies(ctx)
	if err != nil || len(list) != 2 || list[0] != eur {
		t.Errorf("Currencies() = %+v, %v", list, err)
	}
	if _, err := s.Currency(ctx, 42); !errors.Is(err, finctrl.ErrNotFound) {
		t.Errorf("Currency(42) error = %v, want ErrNotFound", err)
	}
	if err := s.UpdateCurrencySign(ctx, 42, "x"); !errors.Is(err, finctrl.ErrNotFound) {
		t.Errorf("UpdateCurrencySign(42) error = %v, want ErrNotFound", err)
	}
}

func TestStore_Accounts(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	_, main := fixture(t, s)

	if err := s.CreateAccount(ctx, &finctrl.Account{Name: "x", CurrencyID: 42}); !errors.Is(err, finctrl.ErrNotFound) {
		t.Errorf("CreateAccount() with unknown currency error = %v, want ErrNotFound", err)
	}
	if err := s.RenameAccount(ctx, main.ID, "checking"); err != nil {
		t.Fatal(err)
	}
	if a, _ := s.Account(ctx, main.ID); a.Name != "checking" {
		t.Errorf("Account() name = %q, want checking", a.Name)
	}

	snap := finctrl.NewSnapshot(main.ID, date.New(2025, 3, 1), D("1"))
	if err := s.InsertSnapshot(ctx, &snap); err != nil {
		t.Fatal(err)
	}
	tx := finctrl.Transaction{AccountID: main.ID, Timestamp: at("2025-03-01 10:00:00"), Kind: finctrl.Credit, Amount: D("1")}
	if err := s.CreateTransaction(ctx, &tx); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteAccount(ctx, main.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Snapshot(ctx, snap.ID); !errors.Is(err, finctrl.ErrNotFound) {
		t.Errorf("balance of a deleted account error = %v, want ErrNotFound", err)
	}
	if _, err := s.Transaction(ctx, tx.ID); !errors.Is(err, finctrl.ErrNotFound) {
		t.Errorf("transaction of a deleted account error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteAccount(ctx, main.ID); !errors.Is(err, finctrl.ErrNotFound) {
		t.Errorf("DeleteAccount() twice error = %v, want ErrNotFound", err)
	}
}

func TestStore_Snapshots(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	_, main := fixture(t, s)

	for i, b := range []string{"1.10", "-2.20", "3.30", "4.40"} {
		snap := finctrl.NewSnapshot(main.ID, date.New(2025, 3, 4-i), D(b))
		if err := s.InsertSnapshot(ctx, &snap); err != nil {
			t.Fatalf("InsertSnapshot() error = %v", err)
		}
	}
	dup := finctrl.NewSnapshot(main.ID, date.New(2025, 3, 2), D("9"))
	if err := s.InsertSnapshot(ctx, &dup); !errors.Is(err, finctrl.ErrDuplicateSnapshot) {
		t.Errorf("InsertSnapshot() duplicate error = %v, want ErrDuplicateSnapshot", err)
	}

	got, found, err := s.FindSnapshot(ctx, main.ID, date.New(2025, 3, 3))
	if err != nil || !found || !got.Balance.Equal(D("-2.20")) {
		t.Errorf("FindSnapshot() = %+v, %v, %v", got, found, err)
	}
	if _, found, _ := s.FindSnapshot(ctx, main.ID, date.New(2025, 3, 5)); found {
		t.Errorf("FindSnapshot() found a balance that was never recorded")
	}

	list, _ := s.AccountSnapshots(ctx, main.ID)
	if len(list) != 4 || list[0].Date != date.New(2025, 3, 1) || list[3].Date != date.New(2025, 3, 4) {
		t.Errorf("AccountSnapshots() = %v, want 4 ordered by date", list)
	}
	if day, _ := s.Snapshots(ctx, date.New(2025, 3, 1)); len(day) != 1 || !day[0].Balance.Equal(D("4.40")) {
		t.Errorf("Snapshots() = %v", day)
	}

	n, err := s.DeleteSnapshots(ctx, main.ID, date.NewRange(date.New(2025, 3, 2), date.New(2025, 3, 3)))
	if err != nil || n != 2 {
		t.Errorf("DeleteSnapshots(range) = %d, %v, want 2", n, err)
	}
	n, err = s.DeleteSnapshots(ctx, main.ID, date.Since(date.New(2025, 3, 2)))
	if err != nil || n != 1 {
		t.Errorf("DeleteSnapshots(since) = %d, %v, want 1", n, err)
	}
	if err := s.DeleteSnapshot(ctx, list[0].ID); err != nil {
		t.Errorf("DeleteSnapshot() error = %v", err)
	}
	if list, _ := s.AccountSnapshots(ctx, main.ID); len(list) != 0 {
		t.Errorf("AccountSnapshots() after deletes = %v", list)
	}
}

func TestStore_Transactions(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	eur, main := fixture(t, s)
	savings := finctrl.Account{Name: "savings", CurrencyID: eur.ID}
	if err := s.CreateAccount(ctx, &savings); err != nil {
		t.Fatal(err)
	}

	record := func(a finctrl.Account, ts string, kind finctrl.Kind, amount string) finctrl.Transaction {
		tx := finctrl.Transaction{AccountID: a.ID, Timestamp: at(ts), Kind: kind, Amount: D(amount), Note: "n"}
		if err := s.CreateTransaction(ctx, &tx); err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}
		return tx
	}
	t1 := record(main, "2025-03-02 00:00:00", finctrl.Debit, "1.005")
	t2 := record(savings, "2025-03-01 23:59:59", finctrl.Credit, "2")
	t3 := record(main, "2025-03-01 09:00:00", finctrl.TransferOut, "3")
	t4 := record(main, "2025-03-01 09:00:00", finctrl.TransferIn, "4")

	got, err := s.Transaction(ctx, t1.ID)
	if err != nil || got.Kind != finctrl.Debit || !got.Amount.Equal(D("1.005")) || !got.Timestamp.Equal(t1.Timestamp) || got.Note != "n" {
		t.Errorf("Transaction() = %+v, %v", got, err)
	}

	testCases := []struct {
		name   string
		filter finctrl.TransactionFilter
		want   []int64
	}{
		{"all", finctrl.TransactionFilter{}, []int64{t3.ID, t4.ID, t2.ID, t1.ID}},
		{"one day", finctrl.TransactionFilter{Range: date.NewRange(date.New(2025, 3, 1), date.New(2025, 3, 1))}, []int64{t3.ID, t4.ID, t2.ID}},
		{"since", finctrl.TransactionFilter{Range: date.Since(date.New(2025, 3, 2))}, []int64{t1.ID}},
		{"accounts", finctrl.TransactionFilter{Accounts: []int64{savings.ID}}, []int64{t2.ID}},
		{"exclusions", finctrl.TransactionFilter{ExcludeAccounts: []int64{savings.ID}, ExcludeIDs: []int64{t3.ID, t1.ID}}, []int64{t4.ID}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Transactions(ctx, tc.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Transactions() returned %d, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Errorf("Transactions()[%d] = #%d, want #%d", i, got[i].ID, id)
				}
			}
		})
	}

	found, err := s.FindTransactions(ctx, main.ID, date.New(2025, 3, 1))
	if err != nil || len(found) != 2 {
		t.Errorf("FindTransactions() = %v, %v, want 2", found, err)
	}
	if err := s.CreateTransaction(ctx, &finctrl.Transaction{AccountID: 42, Timestamp: at("2025-03-01"), Kind: finctrl.Debit}); !errors.Is(err, finctrl.ErrNotFound) {
		t.Errorf("CreateTransaction() on unknown account error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteTransaction(ctx, t3.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteTransaction(ctx, t3.ID); !errors.Is(err, finctrl.ErrNotFound) {
		t.Errorf("DeleteTransaction() twice error = %v, want ErrNotFound", err)
	}
}

// The engine works the same on a database as in memory.
func TestStore_AdvanceSeries(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	_, main := fixture(t, s)

	base := finctrl.NewSnapshot(main.ID, date.New(2025, 3, 1), D("100"))
	if err := s.InsertSnapshot(ctx, &base); err != nil {
		t.Fatal(err)
	}
	for _, tx := range []finctrl.Transaction{
		{AccountID: main.ID, Timestamp: at("2025-03-01 10:00:00"), Kind: finctrl.Credit, Amount: D("50")},
		{AccountID: main.ID, Timestamp: at("2025-03-02 10:00:00"), Kind: finctrl.Debit, Amount: D("20")},
	} {
		if err := s.CreateTransaction(ctx, &tx); err != nil {
			t.Fatal(err)
		}
	}

	series, err := finctrl.NewEngine(s).AdvanceSeries(ctx, date.NewRange(date.New(2025, 3, 2), date.New(2025, 3, 3)))
	if err != nil || series.Err() != nil {
		t.Fatalf("AdvanceSeries() error = %v, %v", err, series.Err())
	}
	for day, want := range map[int]string{2: "150.00", 3: "130.00"} {
		snap, found, err := s.FindSnapshot(ctx, main.ID, date.New(2025, 3, day))
		if err != nil || !found || !snap.Balance.Equal(D(want)) {
			t.Errorf("balance on 2025-03-%02d = %v (found %v, %v), want %s", day, snap.Balance, found, err, want)
		}
	}
}
