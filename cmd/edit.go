package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
)

type editCmd struct {
	id          string
	amount      string
	category    string
	description string
	date        string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a transaction" }
func (*editCmd) Usage() string {
	return `hsb edit -id <id> [-a <amount>] [-c <category>] [-m <description>] [-d <date>]

  Edits the given fields of a transaction. The amount of a transaction
  linked to a goal, debt or subscription cannot be changed; delete it and
  re-record the payment instead.
`
}
func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The transaction id.")
	f.StringVar(&c.amount, "a", "", "The new amount.")
	f.StringVar(&c.category, "c", "", "The new category.")
	f.StringVar(&c.description, "m", "", "The new description.")
	f.StringVar(&c.date, "d", "", "The new date (YYYY-MM-DD).")
}

func (c *editCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	t, ok := ledger.Transaction(c.id)
	if !ok {
		return fail(fmt.Errorf("no transaction with id %q", c.id))
	}
	if c.amount != "" {
		if t.Amount, err = hesabna.ParseAmount(c.amount); err != nil {
			return fail(err)
		}
	}
	if c.category != "" {
		t.Category = c.category
	}
	if c.description != "" {
		t.Description = c.description
	}
	if c.date != "" {
		d, err := hesabna.ParseDate(c.date)
		if err != nil {
			return fail(err)
		}
		t.Date = d.StartOfDay()
	}
	if err := ledger.UpdateTransaction(t); err != nil {
		if errors.Is(err, hesabna.ErrLinkedAmount) {
			return fail(fmt.Errorf("this transaction is linked to a goal, debt or subscription; its amount cannot be edited"))
		}
		return fail(err)
	}
	fmt.Println("Updated.")
	return subcommands.ExitSuccess
}
