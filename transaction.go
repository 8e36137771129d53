package finctrl

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/finctrl/date"
	"github.com/shopspring/decimal"
)

// Kind is the nature of a transaction.
type Kind int

// Kinds of transaction. The values are the ones persisted.
const (
	Debit Kind = iota + 1
	Credit
	TransferOut
	TransferIn
)

// Kinds lists every transaction kind.
var Kinds = []Kind{Debit, Credit, TransferOut, TransferIn}

func (k Kind) String() string {
	switch k {
	case Debit:
		return "DEBIT"
	case Credit:
		return "CREDIT"
	case TransferOut:
		return "TRANSFER_OUT"
	case TransferIn:
		return "TRANSFER_IN"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool { return k >= Debit && k <= TransferIn }

// Outflow reports whether the kind decreases the balance of the account.
func (k Kind) Outflow() bool { return k == Debit || k == TransferOut }

// ParseKind parses a kind name, case insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(s) {
	case "DEBIT":
		return Debit, nil
	case "CREDIT":
		return Credit, nil
	case "TRANSFER_OUT":
		return TransferOut, nil
	case "TRANSFER_IN":
		return TransferIn, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind %q", s)
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal %v", k)
	}
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// TimestampFormat is the layout of transaction timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// Transaction is a movement of money on an account.
//
// Transfers are recorded as two independent transactions, a TransferOut on
// the source account and a TransferIn on the destination; nothing links them.
type Transaction struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account" validate:"gt=0"`
	Timestamp time.Time       `json:"timestamp" validate:"required"`
	Kind      Kind            `json:"kind" validate:"kind"`
	Amount    decimal.Decimal `json:"amount" validate:"gte=0"`
	Note      string          `json:"note,omitempty"`
}

// Date returns the calendar day the transaction is recorded on.
func (tx Transaction) Date() date.Date { return date.Of(tx.Timestamp) }

// Apply returns the balance after this transaction, rounded to two digits.
func (tx Transaction) Apply(balance decimal.Decimal) (decimal.Decimal, error) {
	switch tx.Kind {
	case Debit, TransferOut:
		return Round2(balance.Sub(tx.Amount)), nil
	case Credit, TransferIn:
		return Round2(balance.Add(tx.Amount)), nil
	default:
		return balance, fmt.Errorf("transaction #%d has an unknown kind %v", tx.ID, tx.Kind)
	}
}

// ParseTimestamp parses a transaction timestamp in local time. The time part
// is optional.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{TimestampFormat, "2006-1-2 15:04", "2006-1-2T15:04:05", "2006-1-2"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q want format %q", s, TimestampFormat)
}

// SortTransactions orders transactions by timestamp, then by id.
func SortTransactions(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
