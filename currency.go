package finctrl

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is a unit in which accounts are held.
type Currency struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required,max=8,alphanum"` // unique
	Sign string `json:"sign"`
}

// DefaultSign returns the usual symbol of an ISO 4217 currency code, or the
// code itself when it is not a known ISO currency.
func DefaultSign(code string) string {
	if cur := money.GetCurrency(code); cur != nil && cur.Grapheme != "" {
		return cur.Grapheme
	}
	return code
}

// Format displays an amount in this currency, with two fractional digits
// followed by the currency sign.
func (c Currency) Format(amount decimal.Decimal) string {
	template := "1 $"
	if c.Sign == "" {
		template = "1"
	}
	f := money.NewFormatter(Fraction, ".", "", c.Sign, template)
	return f.Format(Round2(amount).Shift(Fraction).IntPart())
}

// FormatExact is Format for recorded amounts: an amount with more than two
// fractional digits is displayed with all of them.
func (c Currency) FormatExact(amount decimal.Decimal) string {
	if amount.Equal(Round2(amount)) {
		return c.Format(amount)
	}
	if c.Sign == "" {
		return amount.String()
	}
	return amount.String() + " " + c.Sign
}
