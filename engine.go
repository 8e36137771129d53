package finctrl

import (
	"context"
	"fmt"

	"github.com/etnz/finctrl/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Engine derives missing balance snapshots from the ledger.
type Engine struct {
	store BalanceStore
	log   zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to trace computed snapshots and failures.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine working on store.
func NewEngine(store BalanceStore, opts ...Option) *Engine {
	e := &Engine{store: store, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EnsureBalance returns the snapshot of the account on day on, computing and
// recording it if it does not exist yet.
//
// A missing snapshot is rolled forward from the snapshot of the previous day
// by applying the transactions recorded on that previous day, in timestamp
// order. Transactions recorded on day on itself only count for the day after.
// EnsureBalance never looks further back than the previous day: if that
// snapshot is missing too, it fails with a MissingBaseSnapshotError.
func (e *Engine) EnsureBalance(ctx context.Context, accountID int64, on date.Date) (Snapshot, error) {
	s, _, err := e.ensureBalance(ctx, accountID, on)
	return s, err
}

// ensureBalance is EnsureBalance that also reports whether the snapshot was created.
func (e *Engine) ensureBalance(ctx context.Context, accountID int64, on date.Date) (s Snapshot, created bool, err error) {
	if _, err := e.store.Account(ctx, accountID); err != nil {
		return Snapshot{}, false, err
	}

	s, found, err := e.store.FindSnapshot(ctx, accountID, on)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("could not read balance of account #%d on %s: %w", accountID, on, err)
	}
	if found {
		return s, false, nil
	}

	prior := on.Add(-1)
	base, found, err := e.store.FindSnapshot(ctx, accountID, prior)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("could not read balance of account #%d on %s: %w", accountID, prior, err)
	}
	if !found {
		return Snapshot{}, false, &MissingBaseSnapshotError{AccountID: accountID, Date: on}
	}

	txs, err := e.store.FindTransactions(ctx, accountID, prior)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("could not read transactions of account #%d on %s: %w", accountID, prior, err)
	}
	balance, err := Rollforward(base.Balance, txs)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("could not roll account #%d forward to %s: %w", accountID, on, err)
	}

	s = Snapshot{AccountID: accountID, Date: on, Balance: balance}
	if err := e.store.InsertSnapshot(ctx, &s); err != nil {
		return Snapshot{}, false, fmt.Errorf("could not record balance of account #%d on %s: %w", accountID, on, err)
	}
	e.log.Debug().
		Int64("account", accountID).
		Stringer("date", on).
		Stringer("base", base.Balance).
		Int("transactions", len(txs)).
		Stringer("balance", balance).
		Msg("balance rolled forward")
	return s, true, nil
}

// Rollforward applies transactions to a balance, in timestamp order, rounding
// to two digits after each one. txs is sorted in place.
func Rollforward(balance decimal.Decimal, txs []Transaction) (decimal.Decimal, error) {
	SortTransactions(txs)
	for _, tx := range txs {
		var err error
		if balance, err = tx.Apply(balance); err != nil {
			return balance, err
		}
	}
	return balance, nil
}

// DeleteSnapshotSeries deletes every snapshot of the account dated on or
// after from, so that a later AdvanceSeries recomputes them from the last
// remaining one. It returns the number of deleted snapshots.
//
// This is the only way to take an edited or removed transaction into account:
// snapshots are never invalidated automatically.
func (e *Engine) DeleteSnapshotSeries(ctx context.Context, accountID int64, from date.Date) (int, error) {
	if _, err := e.store.Account(ctx, accountID); err != nil {
		return 0, err
	}
	n, err := e.store.DeleteSnapshots(ctx, accountID, date.Since(from))
	if err != nil {
		return n, fmt.Errorf("could not delete balances of account #%d since %s: %w", accountID, from, err)
	}
	e.log.Debug().Int64("account", accountID).Stringer("from", from).Int("deleted", n).Msg("balance series deleted")
	return n, nil
}
