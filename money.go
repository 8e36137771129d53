package finctrl

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fraction is the number of fractional digits of balances.
const Fraction = 2

// Round2 rounds a value to two fractional digits, half to even.
func Round2(d decimal.Decimal) decimal.Decimal { return d.RoundBank(Fraction) }

// ParseAmount parses a decimal amount as typed by a user, like "12.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
