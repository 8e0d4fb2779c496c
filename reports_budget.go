package hesabna

import "time"

// BudgetLine is one expense category's consumption for a calendar month.
type BudgetLine struct {
	Category string
	Limit    Amount
	Spent    Amount
	Ratio    float64 // Spent/Limit, 0 when the limit is 0
	AtRisk   bool    // ratio at or above the warning threshold
}

// atRiskThreshold marks a budget line as at risk once 80% of the limit is
// consumed.
const atRiskThreshold = 0.80

// BudgetReport aggregates the expenses of the calendar month containing ref
// against the budget limits. Every expense category appears, including those
// with a zero limit; a zero-limit line is never at risk no matter the spend.
// A recurring template due this month counts as spend until its confirmation
// moves it to the next month.
func (l *Ledger) BudgetReport(ref time.Time) []BudgetLine {
	spent := make(map[string]Amount)
	for _, t := range l.transactions {
		if t.Type == Expense && sameMonth(t.Date, ref) {
			spent[t.Category] = spent[t.Category].Add(t.Amount)
		}
	}
	lines := make([]BudgetLine, 0, len(l.budgets))
	for _, b := range l.budgets {
		line := BudgetLine{Category: b.Category, Limit: b.Limit, Spent: spent[b.Category]}
		if !b.Limit.IsZero() {
			line.Ratio = line.Spent.Div(b.Limit)
			line.AtRisk = line.Ratio >= atRiskThreshold
		}
		lines = append(lines, line)
	}
	return lines
}

// MonthTotals returns the income and expense sums of the calendar month
// containing ref. Recurring templates dated in the month count like any
// other transaction.
func (l *Ledger) MonthTotals(ref time.Time) (income, expense Amount) {
	for _, t := range l.transactions {
		if !sameMonth(t.Date, ref) {
			continue
		}
		if t.Type == Income {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}
