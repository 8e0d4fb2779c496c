package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type dueCmd struct{}

func (*dueCmd) Name() string     { return "due" }
func (*dueCmd) Synopsis() string { return "show due recurring payments, subscriptions and debt reminders" }
func (*dueCmd) Usage() string {
	return `hsb due

  Shows everything waiting for a confirmation: recurring templates and
  subscriptions that have reached today, and debt payments overdue or due
  within 30 days. Nothing is settled automatically.
`
}
func (*dueCmd) SetFlags(*flag.FlagSet) {}

func (*dueCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.DueMarkdown(ledger.DueRecurring(), ledger.DueSubscriptions(), ledger.DebtReminders()))
	return subcommands.ExitSuccess
}

type confirmCmd struct {
	id string
}

func (*confirmCmd) Name() string     { return "confirm" }
func (*confirmCmd) Synopsis() string { return "settle one occurrence of a recurring transaction" }
func (*confirmCmd) Usage() string {
	return `hsb confirm -id <template-id>

  Records a settlement transaction dated now and advances the template to
  its next occurrence.
`
}
func (c *confirmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The recurring template id (see due).")
}

func (c *confirmCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	t, err := ledger.ConfirmRecurring(c.id)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Confirmed: %s %s (%s)\n", t.Description, t.Amount, t.Category)
	return subcommands.ExitSuccess
}
