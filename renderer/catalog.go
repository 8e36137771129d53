package renderer

import (
	"fmt"

	"github.com/etnz/finctrl"
	"github.com/shopspring/decimal"
)

// Catalog resolves the account and currency ids found in records.
type Catalog struct {
	accounts   map[int64]finctrl.Account
	currencies map[int64]finctrl.Currency
}

// NewCatalog indexes accounts and currencies.
func NewCatalog(accounts []finctrl.Account, currencies []finctrl.Currency) *Catalog {
	c := &Catalog{
		accounts:   make(map[int64]finctrl.Account, len(accounts)),
		currencies: make(map[int64]finctrl.Currency, len(currencies)),
	}
	for _, a := range accounts {
		c.accounts[a.ID] = a
	}
	for _, cur := range currencies {
		c.currencies[cur.ID] = cur
	}
	return c
}

// Account returns the name of an account, or its id if it is unknown.
func (c *Catalog) Account(id int64) string {
	if a, ok := c.accounts[id]; ok {
		return a.Name
	}
	return fmt.Sprintf("#%d", id)
}

// Currency returns the currency of an account.
func (c *Catalog) Currency(accountID int64) finctrl.Currency {
	return c.currencies[c.accounts[accountID].CurrencyID]
}

// Amount formats an amount in the currency of an account.
func (c *Catalog) Amount(accountID int64, amount decimal.Decimal) string {
	return c.Currency(accountID).Format(amount)
}

// ExactAmount formats a recorded amount in the currency of an account,
// keeping every fractional digit beyond the second.
func (c *Catalog) ExactAmount(accountID int64, amount decimal.Decimal) string {
	return c.Currency(accountID).FormatExact(amount)
}
