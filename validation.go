package finctrl

import (
	"fmt"
	"reflect"

	"github.com/etnz/finctrl/date"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimals are checked as numbers, dates as their ISO string ("" when zero).
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(date.Date); ok && !d.IsZero() {
			return d.String()
		}
		return ""
	}, date.Date{})
	if err := v.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
		k, ok := fl.Field().Interface().(Kind)
		return ok && k.Valid()
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateCurrency checks a currency before it is created.
func ValidateCurrency(c Currency) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid currency: %w", err)
	}
	return nil
}

// ValidateAccount checks an account before it is created.
func ValidateAccount(a Account) error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}
	return nil
}

// ValidateSnapshot checks a snapshot before it is recorded.
func ValidateSnapshot(s Snapshot) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid balance: %w", err)
	}
	return nil
}

// ValidateTransaction checks a transaction before it is recorded: it must
// reference an account, have a known kind and a non-negative amount.
func ValidateTransaction(tx Transaction) error {
	if err := validate.Struct(tx); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	return nil
}
