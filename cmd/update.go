package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finctrl/date"
	"github.com/etnz/finctrl/renderer"
	"github.com/google/subcommands"
)

// --- Update Balances Command ---

type updateBalancesCmd struct {
	accounts refList
	date     string
}

func (*updateBalancesCmd) Name() string     { return "update-balances" }
func (*updateBalancesCmd) Synopsis() string { return "compute the missing balances of a day" }
func (*updateBalancesCmd) Usage() string {
	return `finctrl update-balances [-d <date>] [-a <account>]...

  Computes the balance of each account on a day (defaults to today) from its
  balance the day before and the transactions of the day before. Balances
  already recorded are kept as is.
`
}

func (c *updateBalancesCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.accounts, "a", "Account id or name, repeatable (defaults to all accounts)")
	f.StringVar(&c.date, "d", "", "Date of the balances (defaults to today)")
}

func (c *updateBalancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	ids, err := a.accountIDs(ctx, c.accounts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	results, err := a.engine().EnsureAll(ctx, on, ids...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cat, err := a.catalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ResultsMarkdown(results, cat))
	for _, r := range results {
		if !r.OK() {
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// --- Update Balance Series Command ---

type updateBalanceSeriesCmd struct {
	accounts refList
	start    string
	end      string
	quiet    bool
}

func (*updateBalanceSeriesCmd) Name() string { return "update-balance-series" }
func (*updateBalanceSeriesCmd) Synopsis() string {
	return "compute the missing balances of every day of a range"
}
func (*updateBalanceSeriesCmd) Usage() string {
	return `finctrl update-balance-series -s <start> [-e <end>] [-a <account>]...

  Computes the missing balances of the accounts for every day from start to
  end (defaults to today) included, one day after the other. An account with
  no balance the day before start cannot be computed: record one with
  add-balance first.

Usage Examples:
# Catch up every account since the first of January.
$ finctrl update-balance-series -s 2025-01-01
`
}

func (c *updateBalanceSeriesCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.accounts, "a", "Account id or name, repeatable (defaults to all accounts)")
	f.StringVar(&c.start, "s", "", "First day to compute")
	f.StringVar(&c.end, "e", "", "Last day to compute (defaults to today)")
	f.BoolVar(&c.quiet, "q", false, "Only print failures")
}

func (c *updateBalanceSeriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.start == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required")
		return subcommands.ExitUsageError
	}
	start, err := date.Parse(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := parseDate(c.end)
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

	ids, err := a.accountIDs(ctx, c.accounts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	series, err := a.engine().AdvanceSeries(ctx, date.NewRange(start, end), ids...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cat, err := a.catalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SeriesMarkdown(series, cat, c.quiet))
	if len(series.Failures()) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Remove Balance Series Command ---

type removeBalanceSeriesCmd struct {
	account string
	start   string
}

func (*removeBalanceSeriesCmd) Name() string { return "remove-balance-series" }
func (*removeBalanceSeriesCmd) Synopsis() string {
	return "remove the balances of an account from a day on"
}
func (*removeBalanceSeriesCmd) Usage() string {
	return `finctrl remove-balance-series -a <account> -s <start>

  Removes every balance of the account dated on or after start. Run it after
  changing past transactions, then update-balance-series to compute the
  balances again.
`
}

func (c *removeBalanceSeriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name")
	f.StringVar(&c.start, "s", "", "First day to remove")
}

func (c *removeBalanceSeriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.start == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required")
		return subcommands.ExitUsageError
	}
	start, err := date.Parse(c.start)
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
	n, err := a.engine().DeleteSnapshotSeries(ctx, acc.ID, start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Removed %d balances of %q since %s\n", n, acc.Name, start)
	return subcommands.ExitSuccess
}
