package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export transactions as CSV" }
func (*exportCmd) Usage() string {
	return `hsb export [-o <file>]

  Writes every transaction as CSV, newest first, to the file or to stdout.
`
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	out := os.Stdout
	if c.output != "" {
		f, err := os.Create(c.output)
		if err != nil {
			return fail(err)
		}
		defer f.Close()
		out = f
	}
	if err := ledger.ExportCSV(out); err != nil {
		return fail(err)
	}
	if len(ledger.Transactions()) == 0 {
		fmt.Fprintln(os.Stderr, "No transactions to export, wrote the header only.")
	}
	return subcommands.ExitSuccess
}
