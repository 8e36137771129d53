package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finctrl"
	"github.com/etnz/finctrl/renderer"
	"github.com/google/subcommands"
)

// --- Create Account Command ---

type createAccountCmd struct {
	name     string
	currency string
}

func (*createAccountCmd) Name() string     { return "create-account" }
func (*createAccountCmd) Synopsis() string { return "create an account in a currency" }
func (*createAccountCmd) Usage() string {
	return `finctrl create-account -name <name> -c <currency>

  Creates an account. The currency, given by code or id, cannot be changed later.
`
}

func (c *createAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the account")
	f.StringVar(&c.currency, "c", "", "Currency code or id of the account")
}

func (c *createAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.currency == "" {
		fmt.Fprintln(os.Stderr, "Error: -name and -c are required")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	cur, err := a.currency(ctx, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	acc := finctrl.Account{Name: c.name, CurrencyID: cur.ID}
	if err := finctrl.ValidateAccount(acc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := a.CreateAccount(ctx, &acc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Created account #%d %q in %s\n", acc.ID, acc.Name, cur.Code)
	return subcommands.ExitSuccess
}

// --- List Accounts Command ---

type listAccountsCmd struct{}

func (*listAccountsCmd) Name() string           { return "list-accounts" }
func (*listAccountsCmd) Synopsis() string       { return "list accounts" }
func (*listAccountsCmd) Usage() string          { return "finctrl list-accounts\n" }
func (*listAccountsCmd) SetFlags(*flag.FlagSet) {}

func (c *listAccountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	accounts, err := a.Accounts(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cat, err := a.catalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AccountsMarkdown(accounts, cat))
	return subcommands.ExitSuccess
}

// --- Rename Account Command ---

type renameAccountCmd struct{}

func (*renameAccountCmd) Name() string     { return "rename-account" }
func (*renameAccountCmd) Synopsis() string { return "rename an account" }
func (*renameAccountCmd) Usage() string {
	return "finctrl rename-account <account> <name>\n"
}
func (*renameAccountCmd) SetFlags(*flag.FlagSet) {}

func (c *renameAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 || f.Arg(1) == "" {
		fmt.Fprintln(os.Stderr, "Error: expected an account and its new name")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	acc, err := a.account(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := a.RenameAccount(ctx, acc.ID, f.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Renamed account #%d %q to %q\n", acc.ID, acc.Name, f.Arg(1))
	return subcommands.ExitSuccess
}

// --- Remove Account Command ---

type removeAccountCmd struct{}

func (*removeAccountCmd) Name() string     { return "remove-account" }
func (*removeAccountCmd) Synopsis() string { return "remove an account with its balances and transactions" }
func (*removeAccountCmd) Usage() string {
	return `finctrl remove-account <account>

  Removes an account, given by id or name, together with all its balances and
  transactions.
`
}
func (*removeAccountCmd) SetFlags(*flag.FlagSet) {}

func (c *removeAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected an account")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	acc, err := a.account(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := a.DeleteAccount(ctx, acc.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Removed account #%d %q\n", acc.ID, acc.Name)
	return subcommands.ExitSuccess
}
