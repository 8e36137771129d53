package finctrl

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/etnz/finctrl/date"
)

// MemStore is a Store that keeps the whole ledger in memory.
//
// Records are kept in creation order. MemStore is not safe for concurrent use.
type MemStore struct {
	currencies   []Currency
	accounts     []Account
	snapshots    []Snapshot
	transactions []Transaction

	lastCurrency, lastAccount, lastSnapshot, lastTransaction int64
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory ledger.
func NewMemStore() *MemStore { return &MemStore{} }

// nextID returns the id to use for a new record, and updates the sequence.
func nextID(last *int64, want int64) int64 {
	if want == 0 {
		*last++
		return *last
	}
	*last = max(*last, want)
	return want
}

func (m *MemStore) CreateCurrency(_ context.Context, c *Currency) error {
	for _, v := range m.currencies {
		if v.Code == c.Code {
			return fmt.Errorf("currency code %q already exists", c.Code)
		}
		if c.ID != 0 && v.ID == c.ID {
			return fmt.Errorf("currency #%d already exists", c.ID)
		}
	}
	c.ID = nextID(&m.lastCurrency, c.ID)
	m.currencies = append(m.currencies, *c)
	return nil
}

func (m *MemStore) currencyIndex(id int64) int {
	return slices.IndexFunc(m.currencies, func(c Currency) bool { return c.ID == id })
}

func (m *MemStore) Currency(_ context.Context, id int64) (Currency, error) {
	i := m.currencyIndex(id)
	if i < 0 {
		return Currency{}, notFound("currency", id)
	}
	return m.currencies[i], nil
}

func (m *MemStore) CurrencyByCode(_ context.Context, code string) (Currency, error) {
	i := slices.IndexFunc(m.currencies, func(c Currency) bool { return c.Code == code })
	if i < 0 {
		return Currency{}, notFound("currency", code)
	}
	return m.currencies[i], nil
}

func (m *MemStore) Currencies(context.Context) ([]Currency, error) {
	return slices.Clone(m.currencies), nil
}

func (m *MemStore) UpdateCurrencySign(_ context.Context, id int64, sign string) error {
	i := m.currencyIndex(id)
	if i < 0 {
		return notFound("currency", id)
	}
	m.currencies[i].Sign = sign
	return nil
}

func (m *MemStore) CreateAccount(_ context.Context, a *Account) error {
	if m.currencyIndex(a.CurrencyID) < 0 {
		return notFound("currency", a.CurrencyID)
	}
	if a.ID != 0 && m.accountIndex(a.ID) >= 0 {
		return fmt.Errorf("account #%d already exists", a.ID)
	}
	a.ID = nextID(&m.lastAccount, a.ID)
	m.accounts = append(m.accounts, *a)
	return nil
}

func (m *MemStore) accountIndex(id int64) int {
	return slices.IndexFunc(m.accounts, func(a Account) bool { return a.ID == id })
}

func (m *MemStore) Account(_ context.Context, id int64) (Account, error) {
	i := m.accountIndex(id)
	if i < 0 {
		return Account{}, notFound("account", id)
	}
	return m.accounts[i], nil
}

func (m *MemStore) Accounts(context.Context) ([]Account, error) {
	accounts := slices.Clone(m.accounts)
	slices.SortFunc(accounts, func(a, b Account) int { return cmp.Compare(a.ID, b.ID) })
	return accounts, nil
}

func (m *MemStore) RenameAccount(_ context.Context, id int64, name string) error {
	i := m.accountIndex(id)
	if i < 0 {
		return notFound("account", id)
	}
	m.accounts[i].Name = name
	return nil
}

func (m *MemStore) DeleteAccount(_ context.Context, id int64) error {
	i := m.accountIndex(id)
	if i < 0 {
		return notFound("account", id)
	}
	m.accounts = slices.Delete(m.accounts, i, i+1)
	m.snapshots = slices.DeleteFunc(m.snapshots, func(s Snapshot) bool { return s.AccountID == id })
	m.transactions = slices.DeleteFunc(m.transactions, func(tx Transaction) bool { return tx.AccountID == id })
	return nil
}

func (m *MemStore) FindSnapshot(_ context.Context, accountID int64, on date.Date) (Snapshot, bool, error) {
	for _, s := range m.snapshots {
		if s.AccountID == accountID && s.Date == on {
			return s, true, nil
		}
	}
	return Snapshot{}, false, nil
}

func (m *MemStore) InsertSnapshot(ctx context.Context, s *Snapshot) error {
	if m.accountIndex(s.AccountID) < 0 {
		return notFound("account", s.AccountID)
	}
	if _, exists, _ := m.FindSnapshot(ctx, s.AccountID, s.Date); exists {
		return &DuplicateSnapshotError{AccountID: s.AccountID, Date: s.Date}
	}
	if s.ID != 0 && m.snapshotIndex(s.ID) >= 0 {
		return fmt.Errorf("snapshot #%d already exists", s.ID)
	}
	s.ID = nextID(&m.lastSnapshot, s.ID)
	m.snapshots = append(m.snapshots, *s)
	return nil
}

func (m *MemStore) snapshotIndex(id int64) int {
	return slices.IndexFunc(m.snapshots, func(s Snapshot) bool { return s.ID == id })
}

func (m *MemStore) Snapshot(_ context.Context, id int64) (Snapshot, error) {
	i := m.snapshotIndex(id)
	if i < 0 {
		return Snapshot{}, notFound("snapshot", id)
	}
	return m.snapshots[i], nil
}

func (m *MemStore) Snapshots(_ context.Context, on date.Date) ([]Snapshot, error) {
	var list []Snapshot
	for _, s := range m.snapshots {
		if s.Date == on {
			list = append(list, s)
		}
	}
	slices.SortFunc(list, func(a, b Snapshot) int { return cmp.Compare(a.AccountID, b.AccountID) })
	return list, nil
}

func (m *MemStore) AccountSnapshots(_ context.Context, accountID int64) ([]Snapshot, error) {
	var list []Snapshot
	for _, s := range m.snapshots {
		if s.AccountID == accountID {
			list = append(list, s)
		}
	}
	slices.SortFunc(list, func(a, b Snapshot) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	})
	return list, nil
}

func (m *MemStore) DeleteSnapshot(_ context.Context, id int64) error {
	i := m.snapshotIndex(id)
	if i < 0 {
		return notFound("snapshot", id)
	}
	m.snapshots = slices.Delete(m.snapshots, i, i+1)
	return nil
}

func (m *MemStore) DeleteSnapshots(_ context.Context, accountID int64, r date.Range) (int, error) {
	n := len(m.snapshots)
	m.snapshots = slices.DeleteFunc(m.snapshots, func(s Snapshot) bool {
		return s.AccountID == accountID && r.Contains(s.Date)
	})
	return n - len(m.snapshots), nil
}

func (m *MemStore) CreateTransaction(_ context.Context, tx *Transaction) error {
	if m.accountIndex(tx.AccountID) < 0 {
		return notFound("account", tx.AccountID)
	}
	if tx.ID != 0 && m.transactionIndex(tx.ID) >= 0 {
		return fmt.Errorf("transaction #%d already exists", tx.ID)
	}
	tx.ID = nextID(&m.lastTransaction, tx.ID)
	m.transactions = append(m.transactions, *tx)
	return nil
}

func (m *MemStore) transactionIndex(id int64) int {
	return slices.IndexFunc(m.transactions, func(tx Transaction) bool { return tx.ID == id })
}

func (m *MemStore) Transaction(_ context.Context, id int64) (Transaction, error) {
	i := m.transactionIndex(id)
	if i < 0 {
		return Transaction{}, notFound("transaction", id)
	}
	return m.transactions[i], nil
}

func (m *MemStore) FindTransactions(_ context.Context, accountID int64, on date.Date) ([]Transaction, error) {
	var list []Transaction
	for _, tx := range m.transactions {
		if tx.AccountID == accountID && tx.Date() == on {
			list = append(list, tx)
		}
	}
	return list, nil
}

func (m *MemStore) Transactions(_ context.Context, filter TransactionFilter) ([]Transaction, error) {
	var list []Transaction
	for _, tx := range m.transactions {
		if filter.Match(tx) {
			list = append(list, tx)
		}
	}
	SortTransactions(list)
	return list, nil
}

func (m *MemStore) DeleteTransaction(_ context.Context, id int64) error {
	i := m.transactionIndex(id)
	if i < 0 {
		return notFound("transaction", id)
	}
	m.transactions = slices.Delete(m.transactions, i, i+1)
	return nil
}
