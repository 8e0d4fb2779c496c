package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type subsCmd struct{}

func (*subsCmd) Name() string     { return "subs" }
func (*subsCmd) Synopsis() string { return "list subscriptions" }
func (*subsCmd) Usage() string {
	return `hsb subs

  Lists subscriptions sorted by next payment date.
`
}
func (*subsCmd) SetFlags(*flag.FlagSet) {}

func (*subsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SubscriptionsMarkdown(ledger.Subscriptions()))
	return subcommands.ExitSuccess
}

type addSubCmd struct {
	name      string
	amount    string
	frequency string
	next      string
	category  string
}

func (*addSubCmd) Name() string     { return "add-sub" }
func (*addSubCmd) Synopsis() string { return "record a subscription" }
func (*addSubCmd) Usage() string {
	return `hsb add-sub -n <name> -a <amount> [-every <monthly|yearly>] -d <next-payment-date> [-c <category>]

  Records a subscription. Payments are settled with pay-sub, never
  automatically.
`
}
func (c *addSubCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "The subscription name.")
	f.StringVar(&c.amount, "a", "", "The billed amount.")
	f.StringVar(&c.frequency, "every", "monthly", "Billing frequency (monthly or yearly).")
	f.StringVar(&c.next, "d", "", "The next payment date (YYYY-MM-DD).")
	f.StringVar(&c.category, "c", hesabna.BillsCategory, "The expense category for payments.")
}

func (c *addSubCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	amount, err := hesabna.ParseAmount(c.amount)
	if err != nil {
		return fail(err)
	}
	freq, err := hesabna.ParseFrequency(c.frequency)
	if err != nil {
		return fail(err)
	}
	next, err := hesabna.ParseDate(c.next)
	if err != nil {
		return fail(err)
	}
	s, err := ledger.AddSubscription(hesabna.Subscription{
		Name:            c.name,
		Amount:          amount,
		Frequency:       freq,
		NextPaymentDate: next,
		Category:        c.category,
	})
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Created subscription %q (%s)\n", s.Name, s.ID)
	return subcommands.ExitSuccess
}

type editSubCmd struct {
	id        string
	name      string
	amount    string
	frequency string
	next      string
	category  string
}

func (*editSubCmd) Name() string     { return "edit-sub" }
func (*editSubCmd) Synopsis() string { return "edit a subscription" }
func (*editSubCmd) Usage() string {
	return `hsb edit-sub -id <id> [-n <name>] [-a <amount>] [-every <monthly|yearly>] [-d <next-payment-date>] [-c <category>]

  Edits the given fields of a subscription.
`
}
func (c *editSubCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The subscription id (see subs).")
	f.StringVar(&c.name, "n", "", "The new name.")
	f.StringVar(&c.amount, "a", "", "The new billed amount.")
	f.StringVar(&c.frequency, "every", "", "The new billing frequency (monthly or yearly).")
	f.StringVar(&c.next, "d", "", "The new next payment date (YYYY-MM-DD).")
	f.StringVar(&c.category, "c", "", "The new expense category for payments.")
}

func (c *editSubCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	s, ok := ledger.Subscription(c.id)
	if !ok {
		return fail(fmt.Errorf("no subscription with id %q", c.id))
	}
	if c.name != "" {
		s.Name = c.name
	}
	if c.amount != "" {
		if s.Amount, err = hesabna.ParseAmount(c.amount); err != nil {
			return fail(err)
		}
	}
	if c.frequency != "" {
		if s.Frequency, err = hesabna.ParseFrequency(c.frequency); err != nil {
			return fail(err)
		}
	}
	if c.next != "" {
		if s.NextPaymentDate, err = hesabna.ParseDate(c.next); err != nil {
			return fail(err)
		}
	}
	if c.category != "" {
		s.Category = c.category
	}
	if err := ledger.UpdateSubscription(s); err != nil {
		return fail(err)
	}
	fmt.Println("Updated.")
	return subcommands.ExitSuccess
}

type paySubCmd struct {
	id string
}

func (*paySubCmd) Name() string     { return "pay-sub" }
func (*paySubCmd) Synopsis() string { return "record one subscription payment" }
func (*paySubCmd) Usage() string {
	return `hsb pay-sub -id <id>

  Records the payment as a linked expense and advances the next payment
  date by one billing cycle.
`
}
func (c *paySubCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The subscription id (see subs).")
}

func (c *paySubCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	t, err := ledger.RecordSubscriptionPayment(c.id)
	if err != nil {
		return fail(err)
	}
	fmt.Println(renderer.TransactionLine(t))
	return subcommands.ExitSuccess
}

type rmSubCmd struct {
	id string
}

func (*rmSubCmd) Name() string     { return "rm-sub" }
func (*rmSubCmd) Synopsis() string { return "delete a subscription" }
func (*rmSubCmd) Usage() string {
	return `hsb rm-sub -id <id>

  Deletes a subscription. Its payment transactions stay in the history.
`
}
func (c *rmSubCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The subscription id (see subs).")
}

func (c *rmSubCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	if err := ledger.DeleteSubscription(c.id); err != nil {
		return fail(err)
	}
	fmt.Println("Deleted.")
	return subcommands.ExitSuccess
}

type detectSubsCmd struct{}

func (*detectSubsCmd) Name() string     { return "detect-subs" }
func (*detectSubsCmd) Synopsis() string { return "find likely subscriptions in the spending history" }
func (*detectSubsCmd) Usage() string {
	return `hsb detect-subs

  Asks the advisor for recurring merchant patterns in the expense history.
  Detected subscriptions are printed, not saved; add them with add-sub.
`
}
func (*detectSubsCmd) SetFlags(*flag.FlagSet) {}

func (*detectSubsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	found := newAdvisor(ctx).DetectSubscriptions(ctx, ledger.Transactions())
	if len(found) == 0 {
		fmt.Println("No likely subscriptions found.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SubscriptionsMarkdown(found))
	return subcommands.ExitSuccess
}
