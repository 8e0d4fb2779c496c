package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/advisor"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type healthCmd struct {
	tips bool
}

func (*healthCmd) Name() string     { return "health" }
func (*healthCmd) Synopsis() string { return "show the financial health score" }
func (*healthCmd) Usage() string {
	return `hsb health [-tips]

  Scores this month's finances out of 100 across savings rate, debt load,
  emergency fund coverage and income diversity. With -tips the advisor
  comments on the weakest factors.
`
}
func (c *healthCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.tips, "tips", false, "Ask the advisor for advice on the score.")
}

func (c *healthCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}

	// estimate the essential monthly spend first so fund coverage can be
	// scored in months; without it the factor degrades gracefully
	adv := newAdvisor(ctx)
	var essentials hesabna.Amount
	if est := adv.EstimateEmergencyFund(ctx, ledger.Transactions()); est != nil {
		essentials = hesabna.A(est.MonthlyEssentials)
	}
	score := ledger.ScoreHealth(time.Now(), essentials)

	var tips *advisor.HealthTips
	if c.tips {
		tips = adv.HealthTips(ctx, score)
	}
	printMarkdown(renderer.HealthMarkdown(score, tips))
	return subcommands.ExitSuccess
}
