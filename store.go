package finctrl

import (
	"context"
	"slices"

	"github.com/etnz/finctrl/date"
)

// BalanceStore is the part of the ledger storage the Engine works with.
type BalanceStore interface {
	// Account returns the account with this id, or a NotFoundError.
	Account(ctx context.Context, id int64) (Account, error)
	// Accounts returns all accounts ordered by id.
	Accounts(ctx context.Context) ([]Account, error)
	// FindSnapshot returns the snapshot of the account on that day, if any.
	FindSnapshot(ctx context.Context, accountID int64, on date.Date) (Snapshot, bool, error)
	// InsertSnapshot records a new snapshot and sets its ID.
	// It fails with a DuplicateSnapshotError if the account already has a
	// snapshot on that day.
	InsertSnapshot(ctx context.Context, s *Snapshot) error
	// FindTransactions returns the transactions of the account recorded on that day.
	// No particular order is guaranteed.
	FindTransactions(ctx context.Context, accountID int64, on date.Date) ([]Transaction, error)
	// DeleteSnapshots deletes the snapshots of the account dated in r, and
	// returns how many were deleted.
	DeleteSnapshots(ctx context.Context, accountID int64, r date.Range) (int, error)
}

// Store is the full ledger storage.
//
// Create methods set the ID of the record they are given, unless it is
// already set, in which case that ID is used.
type Store interface {
	BalanceStore

	CreateCurrency(ctx context.Context, c *Currency) error
	Currency(ctx context.Context, id int64) (Currency, error)
	CurrencyByCode(ctx context.Context, code string) (Currency, error)
	Currencies(ctx context.Context) ([]Currency, error)
	UpdateCurrencySign(ctx context.Context, id int64, sign string) error

	CreateAccount(ctx context.Context, a *Account) error
	RenameAccount(ctx context.Context, id int64, name string) error
	// DeleteAccount deletes the account with its snapshots and transactions.
	DeleteAccount(ctx context.Context, id int64) error

	Snapshot(ctx context.Context, id int64) (Snapshot, error)
	// Snapshots returns the snapshots of all accounts on a day, ordered by account.
	Snapshots(ctx context.Context, on date.Date) ([]Snapshot, error)
	// AccountSnapshots returns all snapshots of an account ordered by date.
	AccountSnapshots(ctx context.Context, accountID int64) ([]Snapshot, error)
	DeleteSnapshot(ctx context.Context, id int64) error

	CreateTransaction(ctx context.Context, tx *Transaction) error
	Transaction(ctx context.Context, id int64) (Transaction, error)
	// Transactions returns the transactions matching the filter ordered by
	// timestamp then id.
	Transactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// TransactionFilter selects transactions.
//
// The zero value selects everything.
type TransactionFilter struct {
	Range           date.Range // days of the transactions, a zero From means no lower bound.
	Accounts        []int64    // only these accounts, all when empty.
	ExcludeAccounts []int64
	ExcludeIDs      []int64
}

// Match reports whether tx is selected by the filter.
func (f TransactionFilter) Match(tx Transaction) bool {
	on := tx.Date()
	if !f.Range.From.IsZero() && on.Before(f.Range.From) {
		return false
	}
	if !f.Range.IsOpen() && on.After(f.Range.To) {
		return false
	}
	if len(f.Accounts) > 0 && !slices.Contains(f.Accounts, tx.AccountID) {
		return false
	}
	return !slices.Contains(f.ExcludeAccounts, tx.AccountID) && !slices.Contains(f.ExcludeIDs, tx.ID)
}
