package cmd

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/advisor"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type suggestCmd struct {
	description string
}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "suggest a category for a description" }
func (*suggestCmd) Usage() string {
	return `hsb suggest -m <description>

  Asks the advisor which expense category fits a description.
`
}
func (c *suggestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.description, "m", "", "The transaction description.")
}

func (c *suggestCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	var names []string
	for _, cat := range ledger.Categories() {
		if cat.Type == hesabna.Expense {
			names = append(names, cat.Name)
		}
	}
	suggested := newAdvisor(ctx).SuggestCategory(ctx, c.description, names)
	if suggested == "" {
		fmt.Println("No suggestion available.")
		return subcommands.ExitSuccess
	}
	fmt.Println(suggested)
	return subcommands.ExitSuccess
}

type analyzeCmd struct{}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "narrate recent spending patterns" }
func (*analyzeCmd) Usage() string {
	return `hsb analyze

  Asks the advisor for a short analysis of the spending history.
`
}
func (*analyzeCmd) SetFlags(*flag.FlagSet) {}

func (*analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	analysis := newAdvisor(ctx).AnalyzeSpending(ctx, ledger.Transactions())
	if analysis == "" {
		fmt.Println("No analysis available.")
		return subcommands.ExitSuccess
	}
	printMarkdown(analysis)
	return subcommands.ExitSuccess
}

type planCmd struct{}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "project a what-if scenario" }
func (*planCmd) Usage() string {
	return `hsb plan <question...>

  Projects a free-form scenario ("what if I put 500 a month into the
  emergency fund?") against this month's finances.
`
}
func (*planCmd) SetFlags(*flag.FlagSet) {}

func (*planCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if strings.TrimSpace(query) == "" {
		return fail(fmt.Errorf("describe the scenario, e.g. hsb plan what if I buy a car"))
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	income, expense := ledger.MonthTotals(time.Now())
	plan := newAdvisor(ctx).PlanScenario(ctx, query, advisor.TakeSnapshot(ledger, income, expense))
	printMarkdown(renderer.PlanMarkdown(plan))
	return subcommands.ExitSuccess
}

type estimateCmd struct{}

func (*estimateCmd) Name() string     { return "estimate" }
func (*estimateCmd) Synopsis() string { return "estimate the emergency fund target" }
func (*estimateCmd) Usage() string {
	return `hsb estimate

  Estimates essential monthly spending from recent history and derives
  three and six month emergency fund targets.
`
}
func (*estimateCmd) SetFlags(*flag.FlagSet) {}

func (*estimateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	est := newAdvisor(ctx).EstimateEmergencyFund(ctx, ledger.Transactions())
	printMarkdown(renderer.EstimateMarkdown(est))
	return subcommands.ExitSuccess
}

type scanCmd struct {
	file string
	save bool
}

func (*scanCmd) Name() string     { return "scan" }
func (*scanCmd) Synopsis() string { return "extract a transaction from a receipt image" }
func (*scanCmd) Usage() string {
	return `hsb scan -f <image> [-save]

  Extracts merchant, amount, date and category from a receipt image. With
  -save the extracted expense is recorded with the image attached.
`
}
func (c *scanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "The receipt image file.")
	f.BoolVar(&c.save, "save", false, "Record the extracted expense.")
}

func (c *scanCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	image, err := os.ReadFile(c.file)
	if err != nil {
		return fail(err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(c.file))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	details := newAdvisor(ctx).ParseInvoice(ctx, image, mimeType)
	if details == nil {
		return fail(fmt.Errorf("could not read the receipt"))
	}
	fmt.Printf("Merchant:  %s\nAmount:    %s\nDate:      %s\nCategory:  %s\n",
		details.Merchant, hesabna.A(details.Amount), details.Date, details.Category)

	if !c.save {
		return subcommands.ExitSuccess
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	date := hesabna.Today().StartOfDay()
	if details.Date != "" {
		if d, err := hesabna.ParseDate(details.Date); err == nil {
			date = d.StartOfDay()
		}
	}
	category := details.Category
	if category == "" {
		category = hesabna.Fallback
	}
	t, err := ledger.AddTransaction(hesabna.Transaction{
		Type:        hesabna.Expense,
		Amount:      hesabna.A(details.Amount),
		Category:    category,
		Description: details.Merchant,
		Date:        date,
		Invoice:     "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return fail(err)
	}
	fmt.Println(renderer.TransactionLine(t))
	return subcommands.ExitSuccess
}
