package finctrl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/finctrl/date"
	"github.com/shopspring/decimal"
)

// RecordType identifies the kind of record on a line of a JSONL ledger.
type RecordType string

// Record types of a JSONL ledger.
const (
	RecCurrency    RecordType = "currency"
	RecAccount     RecordType = "account"
	RecBalance     RecordType = "balance"
	RecTransaction RecordType = "transaction"
)

// EncodeLedger writes the whole content of a store to w in JSONL format, one
// record per line: currencies, accounts, balances then transactions, so that
// every record only refers to records written before it.
func EncodeLedger(ctx context.Context, w io.Writer, s Store) error {
	bw := bufio.NewWriter(w)

	currencies, err := s.Currencies(ctx)
	if err != nil {
		return fmt.Errorf("could not list currencies: %w", err)
	}
	for _, c := range currencies {
		var o jsonObjectWriter
		o.Append("record", RecCurrency).Append("id", c.ID).Append("name", c.Name).Append("code", c.Code).Optional("sign", c.Sign)
		if err := writeLine(bw, &o); err != nil {
			return err
		}
	}

	accounts, err := s.Accounts(ctx)
	if err != nil {
		return fmt.Errorf("could not list accounts: %w", err)
	}
	for _, a := range accounts {
		var o jsonObjectWriter
		o.Append("record", RecAccount).Append("id", a.ID).Append("name", a.Name).Append("currency", a.CurrencyID)
		if err := writeLine(bw, &o); err != nil {
			return err
		}
	}

	for _, a := range accounts {
		snapshots, err := s.AccountSnapshots(ctx, a.ID)
		if err != nil {
			return fmt.Errorf("could not list balances of account #%d: %w", a.ID, err)
		}
		for _, snap := range snapshots {
			var o jsonObjectWriter
			o.Append("record", RecBalance).Append("id", snap.ID).Append("account", snap.AccountID).Append("date", snap.Date).Append("balance", json.Number(snap.Balance.StringFixed(Fraction)))
			if err := writeLine(bw, &o); err != nil {
				return err
			}
		}
	}

	txs, err := s.Transactions(ctx, TransactionFilter{})
	if err != nil {
		return fmt.Errorf("could not list transactions: %w", err)
	}
	for _, tx := range txs {
		var o jsonObjectWriter
		o.Append("record", RecTransaction).Append("id", tx.ID).Append("account", tx.AccountID).
			Append("timestamp", tx.Timestamp.Format(TimestampFormat)).Append("kind", tx.Kind).
			Append("amount", json.Number(tx.Amount.String())).Optional("note", tx.Note)
		if err := writeLine(bw, &o); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeLine(w io.Writer, o *jsonObjectWriter) error {
	line, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// DecodeLedger reads a JSONL ledger produced by EncodeLedger and creates every
// record in s, keeping their ids. It returns the number of records created.
func DecodeLedger(ctx context.Context, r io.Reader, s Store) (int, error) {
	scanner := bufio.NewScanner(r)
	n, lineNo := 0, 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue // Skip empty lines
		}
		if err := decodeRecord(ctx, line, s); err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("error reading from input: %w", err)
	}
	return n, nil
}

func decodeRecord(ctx context.Context, line []byte, s Store) error {
	var identifier struct {
		Record RecordType `json:"record"`
	}
	if err := json.Unmarshal(line, &identifier); err != nil {
		return fmt.Errorf("could not identify record in %q: %w", string(line), err)
	}

	switch identifier.Record {
	case RecCurrency:
		var c Currency
		if err := json.Unmarshal(line, &c); err != nil {
			return err
		}
		if err := ValidateCurrency(c); err != nil {
			return err
		}
		return s.CreateCurrency(ctx, &c)
	case RecAccount:
		var a Account
		if err := json.Unmarshal(line, &a); err != nil {
			return err
		}
		if err := ValidateAccount(a); err != nil {
			return err
		}
		return s.CreateAccount(ctx, &a)
	case RecBalance:
		var temp struct {
			ID        int64           `json:"id"`
			AccountID int64           `json:"account"`
			Date      date.Date       `json:"date"`
			Balance   decimal.Decimal `json:"balance"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return err
		}
		snap := NewSnapshot(temp.AccountID, temp.Date, temp.Balance)
		snap.ID = temp.ID
		if err := ValidateSnapshot(snap); err != nil {
			return err
		}
		return s.InsertSnapshot(ctx, &snap)
	case RecTransaction:
		var temp struct {
			ID        int64           `json:"id"`
			AccountID int64           `json:"account"`
			Timestamp string          `json:"timestamp"`
			Kind      Kind            `json:"kind"`
			Amount    decimal.Decimal `json:"amount"`
			Note      string          `json:"note"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return err
		}
		ts, err := ParseTimestamp(temp.Timestamp)
		if err != nil {
			return err
		}
		tx := Transaction{ID: temp.ID, AccountID: temp.AccountID, Timestamp: ts, Kind: temp.Kind, Amount: temp.Amount, Note: temp.Note}
		if err := ValidateTransaction(tx); err != nil {
			return err
		}
		return s.CreateTransaction(ctx, &tx)
	default:
		return fmt.Errorf("unknown record type: %q", identifier.Record)
	}
}
