package finctrl

import (
	"github.com/etnz/finctrl/date"
	"github.com/shopspring/decimal"
)

// Snapshot is the balance of an account as of a calendar day.
//
// There is at most one snapshot per account and day. Snapshots are never
// updated, only created or deleted.
type Snapshot struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account" validate:"gt=0"`
	Date      date.Date       `json:"date" validate:"required"`
	Balance   decimal.Decimal `json:"balance"`
}

// NewSnapshot returns a snapshot with its balance rounded to two digits.
func NewSnapshot(accountID int64, on date.Date, balance decimal.Decimal) Snapshot {
	return Snapshot{AccountID: accountID, Date: on, Balance: Round2(balance)}
}
