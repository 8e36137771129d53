package date

import (
	"fmt"
	"iter"
	"time"
)

// Range represents a range of dates, both boundaries included.
//
// A zero To means the range is open-ended.
type Range struct{ From, To Date }

// NewRange returns the range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Since returns the open-ended range starting on from.
func Since(from Date) Range { return Range{From: from} }

// Month returns the range covering the whole month of the given year.
func Month(year int, month time.Month) Range {
	first := New(year, month, 1)
	return Range{From: first, To: New(year, month+1, 0)}
}

// IsOpen reports whether the range has no upper bound.
func (r Range) IsOpen() bool { return r.To.IsZero() }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	if date.Before(r.From) {
		return false
	}
	return r.IsOpen() || !date.After(r.To)
}

// Validate checks that the range is not reversed.
func (r Range) Validate() error {
	if r.From.IsZero() {
		return fmt.Errorf("range has no start date")
	}
	if !r.IsOpen() && r.To.Before(r.From) {
		return fmt.Errorf("range end %s is before its start %s", r.To, r.From)
	}
	return nil
}

// Days returns an iterator over every day of a closed range in ascending order.
// It yields nothing for an open-ended range.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if r.IsOpen() {
			return
		}
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Months returns the number of calendar months touched by the range,
// counting both the first and the last month.
func (r Range) Months() int {
	if r.IsOpen() || r.To.Before(r.From) {
		return 0
	}
	return (r.To.Year()-r.From.Year())*12 + int(r.To.Month()-r.From.Month()) + 1
}

// String formats the range as "from..to".
func (r Range) String() string {
	if r.IsOpen() {
		return fmt.Sprintf("%s..", r.From)
	}
	return fmt.Sprintf("%s..%s", r.From, r.To)
}
