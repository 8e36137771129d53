package finctrl

import (
	"errors"
	"fmt"

	"github.com/etnz/finctrl/date"
)

// Sentinel errors matched with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrMissingBaseSnapshot = errors.New("missing base snapshot")
	ErrDuplicateSnapshot   = errors.New("duplicate snapshot")
)

// NotFoundError reports a reference to a record that does not exist.
type NotFoundError struct {
	Kind string // "currency", "account", "snapshot" or "transaction"
	Key  any    // the id, or the code for a currency
}

func (e *NotFoundError) Error() string {
	if s, ok := e.Key.(string); ok {
		return fmt.Sprintf("%s %q not found", e.Kind, s)
	}
	return fmt.Sprintf("%s #%v not found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// MissingBaseSnapshotError reports that a balance cannot be rolled forward to
// Date because the account has no snapshot on the day before.
type MissingBaseSnapshotError struct {
	AccountID int64
	Date      date.Date
}

func (e *MissingBaseSnapshotError) Error() string {
	return fmt.Sprintf("account #%d: no balance on %s nor on %s to roll forward from", e.AccountID, e.Date, e.Date.Add(-1))
}

func (e *MissingBaseSnapshotError) Is(target error) bool { return target == ErrMissingBaseSnapshot }

// DuplicateSnapshotError reports an attempt to record a second snapshot for
// the same account and day.
type DuplicateSnapshotError struct {
	AccountID int64
	Date      date.Date
}

func (e *DuplicateSnapshotError) Error() string {
	return fmt.Sprintf("account #%d already has a balance on %s", e.AccountID, e.Date)
}

func (e *DuplicateSnapshotError) Is(target error) bool { return target == ErrDuplicateSnapshot }

func notFound(kind string, key any) error { return &NotFoundError{Kind: kind, Key: key} }
