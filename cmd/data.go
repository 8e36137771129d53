package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/finctrl"
	"github.com/google/subcommands"
)

// --- Export Command ---

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the whole ledger as JSON lines" }
func (*exportCmd) Usage() string {
	return `finctrl export [-o <file>]

  Writes every currency, account, balance and transaction of the ledger, one
  JSON object per line, to a file or to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	var w io.Writer = stdout
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}
	buf := bufio.NewWriter(w)
	if err := finctrl.EncodeLedger(ctx, buf, a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := buf.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		a.log.Info().Str("file", c.output).Msg("ledger exported")
	}
	return subcommands.ExitSuccess
}

// --- Import Command ---

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a ledger exported as JSON lines" }
func (*importCmd) Usage() string {
	return `finctrl import <file>

  Reads a file written by export and records everything it contains in the
  ledger, keeping the ids. Use "-" to read stdin. The import stops at the
  first invalid line; what was recorded before it is kept.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a file")
		return subcommands.ExitUsageError
	}
	var r io.Reader = os.Stdin
	if name := f.Arg(0); name != "-" {
		in, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer in.Close()
		r = in
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	n, err := finctrl.DecodeLedger(ctx, r, a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (%d records imported)\n", err, n)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Imported %d records\n", n)
	return subcommands.ExitSuccess
}
