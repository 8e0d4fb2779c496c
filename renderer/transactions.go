// Package renderer turns ledger data into markdown documents. It is pure
// presentation: no store access, no mutation, every function takes values
// and returns a string.
package renderer

import (
	"bytes"
	"fmt"

	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	md "github.com/nao1215/markdown"
)

// TransactionsMarkdown renders a transaction list, newest first.
func TransactionsMarkdown(txs []hesabna.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions recorded.")
		doc.Build()
		return buf.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight,
		},
		Header: []string{"Date", "Type", "Category", "Description", "Amount"},
	}
	for _, t := range txs {
		desc := t.Description
		if t.IsRecurring {
			desc = fmt.Sprintf("%s (recurring %s)", desc, t.Recurrence)
		}
		table.Rows = append(table.Rows, []string{
			t.Date.Format(hesabna.DateFormat),
			string(t.Type),
			t.Category,
			desc,
			t.Amount.String(),
		})
	}
	doc.Table(table)
	doc.Build()
	return buf.String()
}

// TransactionLine renders a one-line human summary of a transaction.
func TransactionLine(t hesabna.Transaction) string {
	verb := "Spent"
	if t.Type == hesabna.Income {
		verb = "Received"
	}
	return fmt.Sprintf("%s %s on %s (%s)", verb, t.Amount, t.Category, t.Description)
}
