// Command finctrl manages a personal ledger of accounts, balances and transactions.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/finctrl/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Exits when the shell asks for completions.
	cmd.Completion(commander).Complete(name)

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !cmd.Known(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
