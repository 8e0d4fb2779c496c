package renderer

import (
	"bytes"
	"fmt"

	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	md "github.com/nao1215/markdown"
)

// CategoriesMarkdown renders the category list grouped by type, in display
// order.
func CategoriesMarkdown(cats []hesabna.Category) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Categories")
	for _, typ := range []hesabna.TransactionType{hesabna.Expense, hesabna.Income} {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft},
			Header:    []string{"#", "Name", "Id"},
		}
		for _, c := range cats {
			if c.Type != typ {
				continue
			}
			name := c.Name
			if c.IsDefault {
				name += " (default)"
			}
			table.Rows = append(table.Rows, []string{fmt.Sprint(c.Order), name, c.ID})
		}
		if len(table.Rows) > 0 {
			doc.H2(fmt.Sprintf("%s categories", typ))
			doc.Table(table)
		}
	}
	doc.Build()
	return buf.String()
}

// GoalsMarkdown renders the savings goal list with progress.
func GoalsMarkdown(goals []hesabna.Goal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Goals")
	if len(goals) == 0 {
		doc.PlainText("No goals yet.")
		doc.Build()
		return buf.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Goal", "Saved", "Target", "Progress", "Id"},
	}
	for _, g := range goals {
		name := g.Name
		if g.IsEmergencyFund {
			name += " (emergency fund)"
		}
		progress := ""
		if g.TargetAmount.IsPositive() {
			progress = fmt.Sprintf("%.0f%%", g.CurrentAmount.Div(g.TargetAmount)*100)
		}
		table.Rows = append(table.Rows, []string{
			name, g.CurrentAmount.String(), g.TargetAmount.String(), progress, g.ID,
		})
	}
	doc.Table(table)
	doc.Build()
	return buf.String()
}

// DebtsMarkdown renders the debt list.
func DebtsMarkdown(debts []hesabna.Debt) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Debts")
	if len(debts) == 0 {
		doc.PlainText("No debts recorded.")
		doc.Build()
		return buf.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Debt", "Remaining", "Monthly", "Next Payment", "Id"},
	}
	for _, d := range debts {
		table.Rows = append(table.Rows, []string{
			d.Name, d.RemainingAmount.String(), d.MonthlyPayment.String(), d.NextPaymentDate.String(), d.ID,
		})
	}
	doc.Table(table)
	doc.Build()
	return buf.String()
}

// SubscriptionsMarkdown renders the subscription list sorted by next payment.
func SubscriptionsMarkdown(subs []hesabna.Subscription) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Subscriptions")
	if len(subs) == 0 {
		doc.PlainText("No subscriptions recorded.")
		doc.Build()
		return buf.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Name", "Amount", "Billing", "Next Payment", "Id"},
	}
	for _, s := range subs {
		table.Rows = append(table.Rows, []string{
			s.Name, s.Amount.String(), string(s.Frequency), s.NextPaymentDate.String(), s.ID,
		})
	}
	doc.Table(table)
	doc.Build()
	return buf.String()
}

// SettingsMarkdown renders the user settings.
func SettingsMarkdown(s hesabna.UserSettings) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Settings")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Setting", "Value"},
		Rows: [][]string{
			{"Name", s.Name},
			{"Email", s.Email},
			{"Monthly income", s.MonthlyIncome.String()},
			{"Theme", s.Theme},
			{"Auto-lock", fmt.Sprintf("%d min", s.AutoLockMinutes)},
		},
	})
	doc.Build()
	return buf.String()
}
