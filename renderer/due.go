package renderer

import (
	"bytes"
	"fmt"

	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	md "github.com/nao1215/markdown"
)

// DueMarkdown renders everything awaiting confirmation or attention:
// due recurring templates, due subscriptions and debt payment reminders.
func DueMarkdown(recurring []hesabna.Transaction, subs []hesabna.Subscription, reminders []hesabna.DebtReminder) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Due Payments")

	if len(recurring)+len(subs)+len(reminders) == 0 {
		doc.PlainText("Nothing due. All caught up.")
		doc.Build()
		return buf.String()
	}

	if len(recurring) > 0 {
		doc.H2("Recurring Transactions")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"Due", "Description", "Amount", "Id"},
		}
		for _, t := range recurring {
			table.Rows = append(table.Rows, []string{
				t.Date.Format(hesabna.DateFormat), t.Description, t.Amount.String(), t.ID,
			})
		}
		doc.Table(table)
	}

	if len(subs) > 0 {
		doc.H2("Subscriptions")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"Due", "Name", "Amount", "Id"},
		}
		for _, s := range subs {
			table.Rows = append(table.Rows, []string{
				s.NextPaymentDate.String(), s.Name, s.Amount.String(), s.ID,
			})
		}
		doc.Table(table)
	}

	if len(reminders) > 0 {
		doc.H2("Debt Payments")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"Due", "Debt", "Payment", "Status"},
		}
		for _, r := range reminders {
			status := fmt.Sprintf("due %s", r.Debt.NextPaymentDate)
			if r.Overdue {
				status = "OVERDUE"
			}
			table.Rows = append(table.Rows, []string{
				r.Debt.NextPaymentDate.String(), r.Debt.Name, r.Debt.MonthlyPayment.String(), status,
			})
		}
		doc.Table(table)
	}
	doc.Build()
	return buf.String()
}
