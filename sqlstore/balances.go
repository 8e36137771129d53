package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/etnz/finctrl"
	"github.com/etnz/finctrl/date"
)

const balanceColumns = `SELECT id, account_id, date, balance FROM balances`

func scanSnapshot(row interface{ Scan(...any) error }) (finctrl.Snapshot, error) {
	var s finctrl.Snapshot
	err := row.Scan(&s.ID, &s.AccountID, &s.Date, &s.Balance)
	return s, err
}

func findSnapshot(ctx context.Context, q querier, accountID int64, on date.Date) (finctrl.Snapshot, bool, error) {
	s, err := scanSnapshot(q.QueryRowContext(ctx, balanceColumns+` WHERE account_id = ? AND date = ?`, accountID, on))
	if errors.Is(err, sql.ErrNoRows) {
		return s, false, nil
	}
	if err != nil {
		return s, false, err
	}
	return s, true, nil
}

func (s *Store) FindSnapshot(ctx context.Context, accountID int64, on date.Date) (finctrl.Snapshot, bool, error) {
	return findSnapshot(ctx, s.db, accountID, on)
}

func (s *Store) InsertSnapshot(ctx context.Context, snap *finctrl.Snapshot) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if ok, err := exists(ctx, tx, "accounts", snap.AccountID); err != nil {
			return err
		} else if !ok {
			return &finctrl.NotFoundError{Kind: "account", Key: snap.AccountID}
		}
		if _, found, err := findSnapshot(ctx, tx, snap.AccountID, snap.Date); err != nil {
			return err
		} else if found {
			return &finctrl.DuplicateSnapshotError{AccountID: snap.AccountID, Date: snap.Date}
		}
		id, err := insert(ctx, tx, `INSERT INTO balances (id, account_id, date, balance) VALUES (?, ?, ?, ?)`,
			nullID(snap.ID), snap.AccountID, snap.Date, snap.Balance.String())
		if err != nil {
			return fmt.Errorf("could not record balance of account #%d on %s: %w", snap.AccountID, snap.Date, err)
		}
		snap.ID = id
		s.log.Debug().Int64("account", snap.AccountID).Stringer("date", snap.Date).Stringer("balance", snap.Balance).Msg("balance recorded")
		return nil
	})
}

func (s *Store) Snapshot(ctx context.Context, id int64) (finctrl.Snapshot, error) {
	snap, err := scanSnapshot(s.db.QueryRowContext(ctx, balanceColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return snap, &finctrl.NotFoundError{Kind: "snapshot", Key: id}
	}
	return snap, err
}

func (s *Store) snapshots(ctx context.Context, query string, args ...any) ([]finctrl.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []finctrl.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, snap)
	}
	return list, rows.Err()
}

func (s *Store) Snapshots(ctx context.Context, on date.Date) ([]finctrl.Snapshot, error) {
	return s.snapshots(ctx, balanceColumns+` WHERE date = ? ORDER BY account_id`, on)
}

func (s *Store) AccountSnapshots(ctx context.Context, accountID int64) ([]finctrl.Snapshot, error) {
	return s.snapshots(ctx, balanceColumns+` WHERE account_id = ? ORDER BY date`, accountID)
}

func (s *Store) DeleteSnapshot(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM balances WHERE id = ?`, id)
	return affected(res, err, "snapshot", id)
}

func (s *Store) DeleteSnapshots(ctx context.Context, accountID int64, r date.Range) (int, error) {
	query, args := `DELETE FROM balances WHERE account_id = ? AND date >= ?`, []any{accountID, r.From}
	if !r.IsOpen() {
		query += ` AND date <= ?`
		args = append(args, r.To)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
