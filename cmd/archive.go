package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
)

type archiveCmd struct {
	start string
	end   string
}

func (*archiveCmd) Name() string     { return "archive" }
func (*archiveCmd) Synopsis() string { return "compact old transactions into summaries" }
func (*archiveCmd) Usage() string {
	return `hsb archive -s <start-date> -e <end-date>

  Collapses every non-recurring transaction in the range into one summary
  per type and category, dated at the end of the range. Income and expense
  totals are preserved; recurring templates are untouched.
`
}
func (c *archiveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "The first day to archive (YYYY-MM-DD).")
	f.StringVar(&c.end, "e", "", "The last day to archive (YYYY-MM-DD).")
}

func (c *archiveCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	start, err := hesabna.ParseDate(c.start)
	if err != nil {
		return fail(err)
	}
	end, err := hesabna.ParseDate(c.end)
	if err != nil {
		return fail(err)
	}
	result, err := ledger.Archive(start, end)
	if err != nil {
		return fail(err)
	}
	if result.Archived == 0 {
		fmt.Println("Nothing to archive in that range.")
		return subcommands.ExitSuccess
	}
	fmt.Printf("Archived %d transactions into %d summaries.\n", result.Archived, len(result.Summaries))
	return subcommands.ExitSuccess
}
