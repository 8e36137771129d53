package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/finctrl"
	"github.com/etnz/finctrl/date"
	"github.com/etnz/finctrl/renderer"
	"github.com/google/subcommands"
)

// --- Add Transaction Command ---

type addTxCmd struct {
	account   string
	kind      string
	timestamp string
	note      string
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "record a transaction on an account" }
func (*addTxCmd) Usage() string {
	return `finctrl add-tx -a <account> -k <kind> [-t <timestamp>] [-note <note>] <amount>

  Records a transaction. The kind is one of debit, credit, transfer_out or
  transfer_in, and the amount is never negative: the kind tells the direction.
  The timestamp defaults to now.

  A transfer between two accounts is recorded as a transfer_out on the source
  and a transfer_in on the destination.

  The balances already recorded after the transaction day are not updated:
  use remove-balance-series and update-balance-series to compute them again.
`
}

func (c *addTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name")
	f.StringVar(&c.kind, "k", "", "Kind of transaction (debit, credit, transfer_out, transfer_in)")
	f.StringVar(&c.timestamp, "t", "", "Timestamp of the transaction, like \"2025-03-01 14:30:00\" (defaults to now)")
	f.StringVar(&c.note, "note", "", "An optional note")
}

func (c *addTxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected an amount")
		return subcommands.ExitUsageError
	}
	kind, err := finctrl.ParseKind(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ts := time.Now().Truncate(time.Second)
	if c.timestamp != "" {
		if ts, err = finctrl.ParseTimestamp(c.timestamp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	amount, err := finctrl.ParseAmount(f.Arg(0))
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
	tx := finctrl.Transaction{AccountID: acc.ID, Timestamp: ts, Kind: kind, Amount: amount, Note: c.note}
	if err := finctrl.ValidateTransaction(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := a.CreateTransaction(ctx, &tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cur, err := a.Currency(ctx, acc.CurrencyID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Recorded %s #%d of %s on %q at %s\n", tx.Kind, tx.ID, cur.FormatExact(tx.Amount), acc.Name, tx.Timestamp.Format(finctrl.TimestampFormat))
	return subcommands.ExitSuccess
}

// --- List Transactions Command ---

type listTxCmd struct {
	accounts refList
	day      string
	month    string
	start    string
	end      string
}

func (*listTxCmd) Name() string     { return "list-tx" }
func (*listTxCmd) Synopsis() string { return "list transactions" }
func (*listTxCmd) Usage() string {
	return `finctrl list-tx [-d <date> | -m <month> | -s <start> [-e <end>]] [-a <account>]...

  Lists the transactions of a day, of a month (YYYY-MM), or of the days from
  start included to end excluded (end defaults to tomorrow). Without any of
  them, lists the transactions of today.
`
}

func (c *listTxCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.accounts, "a", "Account id or name, repeatable (defaults to all accounts)")
	f.StringVar(&c.day, "d", "", "Day of the transactions")
	f.StringVar(&c.month, "m", "", "Month of the transactions (YYYY-MM)")
	f.StringVar(&c.start, "s", "", "First day of the transactions")
	f.StringVar(&c.end, "e", "", "Day after the last transactions (defaults to tomorrow)")
}

// period returns the days selected by the flags.
func (c *listTxCmd) period() (date.Range, error) {
	set := 0
	for _, v := range []string{c.day, c.month, c.start} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return date.Range{}, fmt.Errorf("-d, -m and -s are exclusive")
	}
	if c.end != "" && c.start == "" {
		return date.Range{}, fmt.Errorf("-e requires -s")
	}
	switch {
	case c.month != "":
		y, m, err := parseMonth(c.month)
		if err != nil {
			return date.Range{}, err
		}
		return date.Month(y, m), nil
	case c.start != "":
		start, err := date.Parse(c.start)
		if err != nil {
			return date.Range{}, err
		}
		end := date.Today().Add(1)
		if c.end != "" {
			if end, err = date.Parse(c.end); err != nil {
				return date.Range{}, err
			}
		}
		if !start.Before(end) {
			return date.Range{}, fmt.Errorf("empty range: %s is not before %s", start, end)
		}
		return date.NewRange(start, end.Add(-1)), nil
	default:
		on, err := parseDate(c.day)
		if err != nil {
			return date.Range{}, err
		}
		return date.NewRange(on, on), nil
	}
}

func (c *listTxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := c.period()
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
	txs, err := a.Transactions(ctx, finctrl.TransactionFilter{Range: r, Accounts: ids})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cat, err := a.catalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown("Transactions "+r.String(), txs, cat))
	return subcommands.ExitSuccess
}

// --- Remove Transaction Command ---

type removeTxCmd struct{}

func (*removeTxCmd) Name() string     { return "remove-tx" }
func (*removeTxCmd) Synopsis() string { return "remove a transaction" }
func (*removeTxCmd) Usage() string {
	return `finctrl remove-tx <id>

  Removes a transaction. The balances already recorded after its day are not
  updated.
`
}
func (*removeTxCmd) SetFlags(*flag.FlagSet) {}

func (c *removeTxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a transaction id")
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

	if err := a.DeleteTransaction(ctx, id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Removed transaction #%d\n", id)
	return subcommands.ExitSuccess
}
