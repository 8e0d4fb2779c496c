package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type addCmd struct {
	typ         string
	amount      string
	category    string
	description string
	date        string
	recurring   bool
	recurrence  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or expense" }
func (*addCmd) Usage() string {
	return `hsb add -t <income|expense> -a <amount> [-c <category>] [-m <description>] [-d <date>] [-r [-every <unit>]]

  Records a transaction. Without -c the advisor suggests a category from the
  description, falling back to "Other". With -r the transaction is a
  recurring template that must be confirmed to settle.
`
}
func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", "expense", "Transaction type (income or expense).")
	f.StringVar(&c.amount, "a", "", "The amount.")
	f.StringVar(&c.category, "c", "", "The category. Suggested from the description when empty.")
	f.StringVar(&c.description, "m", "", "A free-form description.")
	f.StringVar(&c.date, "d", "", "The date (YYYY-MM-DD). Defaults to today.")
	f.BoolVar(&c.recurring, "r", false, "Mark as a recurring template.")
	f.StringVar(&c.recurrence, "every", "monthly", "Recurrence unit (daily, weekly, monthly, yearly).")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	typ, err := hesabna.ParseTransactionType(c.typ)
	if err != nil {
		return fail(err)
	}
	amount, err := hesabna.ParseAmount(c.amount)
	if err != nil {
		return fail(err)
	}

	t := hesabna.Transaction{
		Type:        typ,
		Amount:      amount,
		Category:    c.category,
		Description: c.description,
		Date:        hesabna.Today().StartOfDay(),
	}
	if c.date != "" {
		d, err := hesabna.ParseDate(c.date)
		if err != nil {
			return fail(err)
		}
		t.Date = d.StartOfDay()
	}
	if c.recurring {
		rec, err := hesabna.ParseRecurrence(c.recurrence)
		if err != nil {
			return fail(err)
		}
		t.IsRecurring, t.Recurrence = true, rec
	}

	if t.Category == "" && typ == hesabna.Expense {
		var names []string
		for _, cat := range ledger.Categories() {
			if cat.Type == hesabna.Expense {
				names = append(names, cat.Name)
			}
		}
		if suggested := newAdvisor(ctx).SuggestCategory(ctx, t.Description, names); suggested != "" {
			fmt.Printf("Suggested category: %s\n", suggested)
			t.Category = suggested
		}
	}
	if t.Category == "" {
		t.Category = hesabna.Fallback
	}

	t, err = ledger.AddTransaction(t)
	if err != nil {
		return fail(err)
	}
	fmt.Println(renderer.TransactionLine(t))
	return subcommands.ExitSuccess
}
