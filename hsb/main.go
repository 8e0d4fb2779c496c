// Command hsb is the personal finance ledger CLI.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/mohammedsaidi/hisabna-app-v2/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// shell completion, a no-op outside of a completion request
	completion().Complete("hsb")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	sub := map[string]*complete.Command{}
	for _, name := range []string{
		"init", "unlock", "passwd",
		"add", "tx", "edit", "rm", "due", "confirm", "archive", "export",
		"categories", "add-category", "rename-category", "rm-category", "reorder-categories",
		"goals", "add-goal", "edit-goal", "fund-goal", "rm-goal",
		"budgets", "set-budget",
		"debts", "add-debt", "edit-debt", "pay-debt", "rm-debt",
		"subs", "add-sub", "edit-sub", "pay-sub", "rm-sub",
		"health", "suggest", "analyze", "plan", "estimate", "detect-subs", "scan",
		"settings", "wipe",
	} {
		sub[name] = &complete.Command{}
	}
	sub["scan"].Flags = map[string]complete.Predictor{"f": predict.Files("*")}
	return &complete.Command{
		Sub:   sub,
		Flags: map[string]complete.Predictor{"data-dir": predict.Dirs("*")},
	}
}
