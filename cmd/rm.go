package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type rmCmd struct {
	id string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a transaction" }
func (*rmCmd) Usage() string {
	return `hsb rm -id <id>

  Deletes a transaction. A goal-linked transaction rolls the goal's saved
  amount back; debt and subscription balances are left as they are and a
  warning says so.
`
}
func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The transaction id.")
}

func (c *rmCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	warnings, err := ledger.DeleteTransaction(c.id)
	if err != nil {
		return fail(err)
	}
	for _, w := range warnings {
		fmt.Println("Warning:", w)
	}
	fmt.Println("Deleted.")
	return subcommands.ExitSuccess
}
