package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type debtsCmd struct{}

func (*debtsCmd) Name() string     { return "debts" }
func (*debtsCmd) Synopsis() string { return "list debts" }
func (*debtsCmd) Usage() string {
	return `hsb debts

  Lists debts with remaining balance and next payment date.
`
}
func (*debtsCmd) SetFlags(*flag.FlagSet) {}

func (*debtsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.DebtsMarkdown(ledger.Debts()))
	return subcommands.ExitSuccess
}

type addDebtCmd struct {
	name    string
	total   string
	monthly string
	next    string
}

func (*addDebtCmd) Name() string     { return "add-debt" }
func (*addDebtCmd) Synopsis() string { return "record a debt" }
func (*addDebtCmd) Usage() string {
	return `hsb add-debt -n <name> -a <total> -p <monthly-payment> -d <next-payment-date>

  Records a debt. The remaining balance starts at the total and only moves
  through pay-debt.
`
}
func (c *addDebtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "The debt name.")
	f.StringVar(&c.total, "a", "", "The total amount owed.")
	f.StringVar(&c.monthly, "p", "", "The monthly payment.")
	f.StringVar(&c.next, "d", "", "The next payment date (YYYY-MM-DD).")
}

func (c *addDebtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	total, err := hesabna.ParseAmount(c.total)
	if err != nil {
		return fail(err)
	}
	monthly, err := hesabna.ParseAmount(c.monthly)
	if err != nil {
		return fail(err)
	}
	next, err := hesabna.ParseDate(c.next)
	if err != nil {
		return fail(err)
	}
	d, err := ledger.AddDebt(c.name, total, monthly, next)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Created debt %q (%s)\n", d.Name, d.ID)
	return subcommands.ExitSuccess
}

type editDebtCmd struct {
	id      string
	name    string
	monthly string
	next    string
}

func (*editDebtCmd) Name() string     { return "edit-debt" }
func (*editDebtCmd) Synopsis() string { return "edit a debt" }
func (*editDebtCmd) Usage() string {
	return `hsb edit-debt -id <id> [-n <name>] [-p <monthly-payment>] [-d <next-payment-date>]

  Edits the given fields of a debt. The total and remaining amounts only
  move through pay-debt.
`
}
func (c *editDebtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The debt id (see debts).")
	f.StringVar(&c.name, "n", "", "The new name.")
	f.StringVar(&c.monthly, "p", "", "The new monthly payment.")
	f.StringVar(&c.next, "d", "", "The new next payment date (YYYY-MM-DD).")
}

func (c *editDebtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	d, ok := ledger.Debt(c.id)
	if !ok {
		return fail(fmt.Errorf("no debt with id %q", c.id))
	}
	if c.name != "" {
		d.Name = c.name
	}
	if c.monthly != "" {
		if d.MonthlyPayment, err = hesabna.ParseAmount(c.monthly); err != nil {
			return fail(err)
		}
	}
	if c.next != "" {
		if d.NextPaymentDate, err = hesabna.ParseDate(c.next); err != nil {
			return fail(err)
		}
	}
	if err := ledger.UpdateDebt(d); err != nil {
		return fail(err)
	}
	fmt.Println("Updated.")
	return subcommands.ExitSuccess
}

type payDebtCmd struct {
	id     string
	amount string
}

func (*payDebtCmd) Name() string     { return "pay-debt" }
func (*payDebtCmd) Synopsis() string { return "record a debt payment" }
func (*payDebtCmd) Usage() string {
	return `hsb pay-debt -id <id> [-a <amount>]

  Records a payment as a linked expense, reduces the remaining balance by
  the paid amount and advances the next payment date by one month. Without
  -a the debt's monthly payment is used.
`
}
func (c *payDebtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The debt id (see debts).")
	f.StringVar(&c.amount, "a", "", "The paid amount (defaults to the monthly payment).")
}

func (c *payDebtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	d, ok := ledger.Debt(c.id)
	if !ok {
		return fail(fmt.Errorf("no debt with id %q", c.id))
	}
	amount := d.MonthlyPayment
	if c.amount != "" {
		if amount, err = hesabna.ParseAmount(c.amount); err != nil {
			return fail(err)
		}
	}
	t, err := ledger.RecordDebtPayment(c.id, amount)
	if err != nil {
		return fail(err)
	}
	fmt.Println(renderer.TransactionLine(t))
	return subcommands.ExitSuccess
}

type rmDebtCmd struct {
	id string
}

func (*rmDebtCmd) Name() string     { return "rm-debt" }
func (*rmDebtCmd) Synopsis() string { return "delete a debt" }
func (*rmDebtCmd) Usage() string {
	return `hsb rm-debt -id <id>

  Deletes a debt. Its payment transactions stay in the history.
`
}
func (c *rmDebtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The debt id (see debts).")
}

func (c *rmDebtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	if err := ledger.DeleteDebt(c.id); err != nil {
		return fail(err)
	}
	fmt.Println("Deleted.")
	return subcommands.ExitSuccess
}
