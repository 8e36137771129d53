package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/etnz/finctrl"
)

func (s *Store) CreateCurrency(ctx context.Context, c *finctrl.Currency) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM currencies WHERE code = ?`, c.Code).Scan(&id)
		if err == nil {
			return fmt.Errorf("currency code %q already exists", c.Code)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("could not read currency %q: %w", c.Code, err)
		}
		id, err = insert(ctx, tx, `INSERT INTO currencies (id, name, code, sign) VALUES (?, ?, ?, ?)`, nullID(c.ID), c.Name, c.Code, c.Sign)
		if err != nil {
			return fmt.Errorf("could not create currency %q: %w", c.Code, err)
		}
		c.ID = id
		return nil
	})
}

const currencyColumns = `SELECT id, name, code, sign FROM currencies`

func scanCurrency(row interface{ Scan(...any) error }) (finctrl.Currency, error) {
	var c finctrl.Currency
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Sign)
	return c, err
}

func (s *Store) Currency(ctx context.Context, id int64) (finctrl.Currency, error) {
	c, err := scanCurrency(s.db.QueryRowContext(ctx, currencyColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return c, &finctrl.NotFoundError{Kind: "currency", Key: id}
	}
	return c, err
}

func (s *Store) CurrencyByCode(ctx context.Context, code string) (finctrl.Currency, error) {
	c, err := scanCurrency(s.db.QueryRowContext(ctx, currencyColumns+` WHERE code = ?`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return c, &finctrl.NotFoundError{Kind: "currency", Key: code}
	}
	return c, err
}

func (s *Store) Currencies(ctx context.Context) ([]finctrl.Currency, error) {
	rows, err := s.db.QueryContext(ctx, currencyColumns+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []finctrl.Currency
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (s *Store) UpdateCurrencySign(ctx context.Context, id int64, sign string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE currencies SET sign = ? WHERE id = ?`, sign, id)
	return affected(res, err, "currency", id)
}

func (s *Store) CreateAccount(ctx context.Context, a *finctrl.Account) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if ok, err := exists(ctx, tx, "currencies", a.CurrencyID); err != nil {
			return err
		} else if !ok {
			return &finctrl.NotFoundError{Kind: "currency", Key: a.CurrencyID}
		}
		id, err := insert(ctx, tx, `INSERT INTO accounts (id, name, currency_id) VALUES (?, ?, ?)`, nullID(a.ID), a.Name, a.CurrencyID)
		if err != nil {
			return fmt.Errorf("could not create account %q: %w", a.Name, err)
		}
		a.ID = id
		return nil
	})
}

const accountColumns = `SELECT id, name, currency_id FROM accounts`

func scanAccount(row interface{ Scan(...any) error }) (finctrl.Account, error) {
	var a finctrl.Account
	err := row.Scan(&a.ID, &a.Name, &a.CurrencyID)
	return a, err
}

func (s *Store) Account(ctx context.Context, id int64) (finctrl.Account, error) {
	a, err := scanAccount(s.db.QueryRowContext(ctx, accountColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return a, &finctrl.NotFoundError{Kind: "account", Key: id}
	}
	return a, err
}

func (s *Store) Accounts(ctx context.Context) ([]finctrl.Account, error) {
	rows, err := s.db.QueryContext(ctx, accountColumns+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []finctrl.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (s *Store) RenameAccount(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE accounts SET name = ? WHERE id = ?`, name, id)
	return affected(res, err, "account", id)
}

// DeleteAccount relies on the foreign keys to delete the balances and
// transactions of the account.
func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	return affected(res, err, "account", id)
}
