package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/finctrl"
	"github.com/etnz/finctrl/renderer"
	"github.com/google/subcommands"
)

// --- Create Currency Command ---

type createCurrencyCmd struct {
	name string
	code string
	sign string
}

func (*createCurrencyCmd) Name() string     { return "create-currency" }
func (*createCurrencyCmd) Synopsis() string { return "declare a currency accounts can be held in" }
func (*createCurrencyCmd) Usage() string {
	return `finctrl create-currency -name <name> -code <code> [-sign <sign>]

  Declares a currency. The code must be unique. The sign defaults to the usual
  symbol of ISO 4217 currencies, or to the code itself.
`
}

func (c *createCurrencyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the currency")
	f.StringVar(&c.code, "code", "", "Code of the currency, like EUR")
	f.StringVar(&c.sign, "sign", "", "Sign displayed after amounts")
}

func (c *createCurrencyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cur := finctrl.Currency{Name: c.name, Code: strings.ToUpper(c.code), Sign: c.sign}
	if cur.Sign == "" {
		cur.Sign = finctrl.DefaultSign(cur.Code)
	}
	if err := finctrl.ValidateCurrency(cur); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.CreateCurrency(ctx, &cur); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Created currency #%d %s (%s)\n", cur.ID, cur.Code, cur.Sign)
	return subcommands.ExitSuccess
}

// --- List Currencies Command ---

type listCurrenciesCmd struct{}

func (*listCurrenciesCmd) Name() string     { return "list-currencies" }
func (*listCurrenciesCmd) Synopsis() string { return "list currencies" }
func (*listCurrenciesCmd) Usage() string    { return "finctrl list-currencies\n" }
func (*listCurrenciesCmd) SetFlags(*flag.FlagSet) {}

func (c *listCurrenciesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	currencies, err := a.Currencies(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CurrenciesMarkdown(currencies))
	return subcommands.ExitSuccess
}

// --- Edit Currency Sign Command ---

type editCurrencySignCmd struct{}

func (*editCurrencySignCmd) Name() string     { return "edit-currency-sign" }
func (*editCurrencySignCmd) Synopsis() string { return "change the sign of a currency" }
func (*editCurrencySignCmd) Usage() string {
	return `finctrl edit-currency-sign <currency> <sign>

  Changes the sign displayed after the amounts of a currency, given by id or code.
`
}
func (*editCurrencySignCmd) SetFlags(*flag.FlagSet) {}

func (c *editCurrencySignCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a currency and a sign")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	cur, err := a.currency(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := a.UpdateCurrencySign(ctx, cur.ID, f.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Currency %s sign set to %q\n", cur.Code, f.Arg(1))
	return subcommands.ExitSuccess
}
