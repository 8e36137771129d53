package finctrl

// Account is a place where money is held, in a single currency.
//
// The currency is fixed when the account is created.
type Account struct {
	ID         int64  `json:"id"`
	Name       string `json:"name" validate:"required"`
	CurrencyID int64  `json:"currency" validate:"gt=0"`
}
