package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/finctrl"
	"github.com/etnz/finctrl/date"
)

// Timestamps are stored as text in finctrl.TimestampFormat: their lexical
// order is their chronological order, and a day is a range of prefixes.

const transactionColumns = `SELECT id, account_id, timestamp, kind, amount, note FROM transactions`

func scanTransaction(row interface{ Scan(...any) error }) (finctrl.Transaction, error) {
	var tx finctrl.Transaction
	var ts string
	if err := row.Scan(&tx.ID, &tx.AccountID, &ts, &tx.Kind, &tx.Amount, &tx.Note); err != nil {
		return tx, err
	}
	var err error
	if tx.Timestamp, err = finctrl.ParseTimestamp(ts); err != nil {
		return tx, fmt.Errorf("transaction #%d: %w", tx.ID, err)
	}
	return tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, t *finctrl.Transaction) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if ok, err := exists(ctx, tx, "accounts", t.AccountID); err != nil {
			return err
		} else if !ok {
			return &finctrl.NotFoundError{Kind: "account", Key: t.AccountID}
		}
		id, err := insert(ctx, tx, `INSERT INTO transactions (id, account_id, timestamp, kind, amount, note) VALUES (?, ?, ?, ?, ?, ?)`,
			nullID(t.ID), t.AccountID, t.Timestamp.Format(finctrl.TimestampFormat), int(t.Kind), t.Amount.String(), t.Note)
		if err != nil {
			return fmt.Errorf("could not record transaction: %w", err)
		}
		t.ID = id
		return nil
	})
}

func (s *Store) Transaction(ctx context.Context, id int64) (finctrl.Transaction, error) {
	tx, err := scanTransaction(s.db.QueryRowContext(ctx, transactionColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return tx, &finctrl.NotFoundError{Kind: "transaction", Key: id}
	}
	return tx, err
}

func (s *Store) transactions(ctx context.Context, where []string, args []any) ([]finctrl.Transaction, error) {
	query := transactionColumns
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY timestamp, id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []finctrl.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}

func (s *Store) FindTransactions(ctx context.Context, accountID int64, on date.Date) ([]finctrl.Transaction, error) {
	return s.transactions(ctx,
		[]string{`account_id = ?`, `timestamp >= ?`, `timestamp < ?`},
		[]any{accountID, on.String(), on.Add(1).String()})
}

func (s *Store) Transactions(ctx context.Context, f finctrl.TransactionFilter) ([]finctrl.Transaction, error) {
	var where []string
	var args []any
	if !f.Range.From.IsZero() {
		where = append(where, `timestamp >= ?`)
		args = append(args, f.Range.From.String())
	}
	if !f.Range.IsOpen() {
		where = append(where, `timestamp < ?`)
		args = append(args, f.Range.To.Add(1).String())
	}
	if len(f.Accounts) > 0 {
		clause, ids := in(`account_id`, f.Accounts)
		where, args = append(where, clause), append(args, ids...)
	}
	if len(f.ExcludeAccounts) > 0 {
		clause, ids := in(`account_id`, f.ExcludeAccounts)
		where, args = append(where, `NOT `+clause), append(args, ids...)
	}
	if len(f.ExcludeIDs) > 0 {
		clause, ids := in(`id`, f.ExcludeIDs)
		where, args = append(where, `NOT `+clause), append(args, ids...)
	}
	return s.transactions(ctx, where, args)
}

func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	return affected(res, err, "transaction", id)
}
