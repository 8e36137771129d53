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

// --- Add Balance Command ---

type addBalanceCmd struct {
	account string
	date    string
}

func (*addBalanceCmd) Name() string     { return "add-balance" }
func (*addBalanceCmd) Synopsis() string { return "record the balance of an account on a day" }
func (*addBalanceCmd) Usage() string {
	return `finctrl add-balance -a <account> [-d <date>] <balance>

  Records the known balance of an account, as of the start of a day (defaults
  to today). It is the base later balances are computed from.
`
}

func (c *addBalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name")
	f.StringVar(&c.date, "d", "", "Date of the balance (defaults to today)")
}

func (c *addBalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a balance")
		return subcommands.ExitUsageError
	}
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	balance, err := finctrl.ParseAmount(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	acc, err := a.account(ctx, c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	snap := finctrl.NewSnapshot(acc.ID, on, balance)
	if err := finctrl.ValidateSnapshot(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := a.InsertSnapshot(ctx, &snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cur, err := a.Currency(ctx, acc.CurrencyID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Recorded balance #%d of %q on %s: %s\n", snap.ID, acc.Name, snap.Date, cur.Format(snap.Balance))
	return subcommands.ExitSuccess
}

// --- List Balances Command ---

type listBalancesCmd struct {
	account string
	date    string
}

func (*listBalancesCmd) Name() string     { return "list-balances" }
func (*listBalancesCmd) Synopsis() string { return "list the recorded balances of a day or of an account" }
func (*listBalancesCmd) Usage() string {
	return `finctrl list-balances [-d <date>] [-a <account>]

  Lists the balances of every account on a day (defaults to today), or all
  the balances of one account with -a.
`
}

func (c *listBalancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "List every balance of this account instead")
	f.StringVar(&c.date, "d", "", "Date of the balances (defaults to today)")
}

func (c *listBalancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	cat, err := a.catalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.account != "" {
		acc, err := a.account(ctx, c.account)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		snapshots, err := a.AccountSnapshots(ctx, acc.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.BalancesMarkdown(acc, snapshots, cat))
		return subcommands.ExitSuccess
	}

	snapshots, err := a.Snapshots(ctx, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	results := make([]finctrl.Result, len(snapshots))
	for i, s := range snapshots {
		results[i] = finctrl.Result{Date: on, AccountID: s.AccountID, Snapshot: s}
	}
	if len(results) == 0 {
		fmt.Fprintf(stdout, "No balances recorded on %s\n", on)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ResultsMarkdown(results, cat))
	return subcommands.ExitSuccess
}

// --- Remove Balance Command ---

type removeBalanceCmd struct{}

func (*removeBalanceCmd) Name() string           { return "remove-balance" }
func (*removeBalanceCmd) Synopsis() string       { return "remove a recorded balance" }
func (*removeBalanceCmd) Usage() string          { return "finctrl remove-balance <id>\n" }
func (*removeBalanceCmd) SetFlags(*flag.FlagSet) {}

func (c *removeBalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a balance id")
		return subcommands.ExitUsageError
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.DeleteSnapshot(ctx, id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Removed balance #%d\n", id)
	return subcommands.ExitSuccess
}
