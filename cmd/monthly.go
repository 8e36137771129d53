package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finctrl"
	"github.com/etnz/finctrl/date"
	"github.com/etnz/finctrl/renderer"
	"github.com/google/subcommands"
)

// --- Monthly Report Command ---

type monthlyReportCmd struct {
	month string
}

func (*monthlyReportCmd) Name() string     { return "monthly-report" }
func (*monthlyReportCmd) Synopsis() string { return "display the income and expenses of a month" }
func (*monthlyReportCmd) Usage() string {
	return `finctrl monthly-report [-m <month>]

  Displays the credits and debits of a month (YYYY-MM, defaults to the current
  month) summed per currency. Transfers are left out.
`
}

func (c *monthlyReportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month of the report (YYYY-MM)")
}

func (c *monthlyReportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	year, month, err := parseMonth(c.month)
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

	report, err := finctrl.NewMonthlyReport(ctx, a, year, month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.MonthlyMarkdown(report))
	return subcommands.ExitSuccess
}

// --- Balance Report Command ---

type balanceReportCmd struct {
	date string
}

func (*balanceReportCmd) Name() string     { return "balance-report" }
func (*balanceReportCmd) Synopsis() string { return "display the total balances of a day" }
func (*balanceReportCmd) Usage() string {
	return `finctrl balance-report [-d <date>]

  Displays the balances recorded on a day (defaults to today) summed per
  currency. Run update-balances first to compute the missing ones.
`
}

func (c *balanceReportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the report (defaults to today)")
}

func (c *balanceReportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	report, err := finctrl.NewBalanceReport(ctx, a, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BalanceReportMarkdown(report))
	return subcommands.ExitSuccess
}

// --- Average Overview Command ---

type averageOverviewCmd struct {
	start            string
	end              string
	excludeAccounts  refList
	excludeTxs       idList
	withTransactions bool
}

func (*averageOverviewCmd) Name() string { return "average-overview" }
func (*averageOverviewCmd) Synopsis() string {
	return "display the monthly average of income and expenses"
}
func (*averageOverviewCmd) Usage() string {
	return `finctrl average-overview -s <month> [-e <month>] [-x <account>]... [-xtx <id>,...] [-tx]

  Displays the credits and debits summed per currency over whole months, from
  the start month to the end month included (defaults to the current month),
  and their average per month.

Usage Examples:
# Averages of the first quarter, ignoring the savings account and two
# exceptional transactions.
$ finctrl average-overview -s 2025-01 -e 2025-03 -x savings -xtx 12,15
`
}

func (c *averageOverviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "First month (YYYY-MM)")
	f.StringVar(&c.end, "e", "", "Last month (YYYY-MM, defaults to the current month)")
	f.Var(&c.excludeAccounts, "x", "Account id or name to leave out, repeatable")
	f.Var(&c.excludeTxs, "xtx", "Comma separated ids of transactions to leave out")
	f.BoolVar(&c.withTransactions, "tx", false, "List the transactions taken into account")
}

func (c *averageOverviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.start == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required")
		return subcommands.ExitUsageError
	}
	fy, fm, err := parseMonth(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ty, tm, err := parseMonth(c.end)
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

	excluded, err := a.accountIDs(ctx, c.excludeAccounts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	o, err := finctrl.NewAverageOverview(ctx, a, date.New(fy, fm, 1), date.New(ty, tm, 1), excluded, c.excludeTxs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cat, err := a.catalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AverageOverviewMarkdown(o, cat, c.withTransactions))
	return subcommands.ExitSuccess
}

// --- Account Report Command ---

type accountReportCmd struct {
	account string
	start   string
	end     string
}

func (*accountReportCmd) Name() string { return "account-report" }
func (*accountReportCmd) Synopsis() string {
	return "check the movements of an account against its balances"
}
func (*accountReportCmd) Usage() string {
	return `finctrl account-report -a <account> -s <start> [-e <end>]

  Displays the balance of an account on start, the credits and debits
  recorded from start included to end excluded (defaults to today), the
  balance they lead to, and the balance actually recorded on end.
`
}

func (c *accountReportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name")
	f.StringVar(&c.start, "s", "", "First day")
	f.StringVar(&c.end, "e", "", "Day after the last movements (defaults to today)")
}

func (c *accountReportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	acc, err := a.account(ctx, c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := finctrl.NewAccountReport(ctx, a, acc.ID, start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AccountReportMarkdown(report))
	return subcommands.ExitSuccess
}
