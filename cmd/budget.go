package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type budgetsCmd struct {
	month   string
	suggest bool
}

func (*budgetsCmd) Name() string     { return "budgets" }
func (*budgetsCmd) Synopsis() string { return "show the monthly budget report" }
func (*budgetsCmd) Usage() string {
	return `hsb budgets [-d <date>] [-suggest]

  Shows limit, spent and status per expense category for the month of the
  given date (default: this month). With -suggest the advisor proposes
  limits from the spending history; they are printed, not saved.
`
}
func (c *budgetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "d", "", "Any date inside the month to report on.")
	f.BoolVar(&c.suggest, "suggest", false, "Ask the advisor for suggested limits.")
}

func (c *budgetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	ref := time.Now()
	if c.month != "" {
		d, err := hesabna.ParseDate(c.month)
		if err != nil {
			return fail(err)
		}
		ref = d.StartOfDay()
	}
	printMarkdown(renderer.BudgetMarkdown(ref, ledger.BudgetReport(ref)))

	if c.suggest {
		var names []string
		for _, cat := range ledger.Categories() {
			if cat.Type == hesabna.Expense {
				names = append(names, cat.Name)
			}
		}
		suggestions := newAdvisor(ctx).SuggestBudgets(ctx, ledger.Transactions(), names)
		if len(suggestions) == 0 {
			fmt.Println("No suggestions available.")
			return subcommands.ExitSuccess
		}
		fmt.Println("Suggested limits:")
		for _, b := range suggestions {
			fmt.Printf("  %s: %s\n", b.Category, b.Limit)
		}
	}
	return subcommands.ExitSuccess
}

type setBudgetCmd struct {
	category string
	limit    string
}

func (*setBudgetCmd) Name() string     { return "set-budget" }
func (*setBudgetCmd) Synopsis() string { return "set a category's monthly limit" }
func (*setBudgetCmd) Usage() string {
	return `hsb set-budget -c <category> -a <limit>

  Sets the monthly limit of one expense category. A limit of 0 means
  unbudgeted.
`
}
func (c *setBudgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "The expense category.")
	f.StringVar(&c.limit, "a", "", "The monthly limit.")
}

func (c *setBudgetCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	limit, err := hesabna.ParseAmount(c.limit)
	if err != nil {
		return fail(err)
	}
	if err := ledger.SaveBudgets([]hesabna.Budget{{Category: c.category, Limit: limit}}); err != nil {
		return fail(err)
	}
	fmt.Printf("Budget for %s set to %s\n", c.category, limit)
	return subcommands.ExitSuccess
}
