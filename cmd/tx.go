package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type txCmd struct {
	category string
	typ      string
	head     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `hsb tx [-t <type>] [-c <category>] [-head <n>]

  Lists transactions, newest first, with optional filtering.
`
}
func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", "", "Only this type (income or expense).")
	f.StringVar(&c.category, "c", "", "Only this category.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
}

func (c *txCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	var txs []hesabna.Transaction
	for _, t := range ledger.Transactions() {
		if c.typ != "" && string(t.Type) != c.typ {
			continue
		}
		if c.category != "" && t.Category != c.category {
			continue
		}
		txs = append(txs, t)
	}
	if c.head > 0 && len(txs) > c.head {
		txs = txs[:c.head]
	}
	printMarkdown(renderer.TransactionsMarkdown(txs))
	return subcommands.ExitSuccess
}
