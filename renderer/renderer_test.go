package renderer

import (
	"strings"
	"testing"
	"time"

	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// headings parses a rendered document and returns its heading texts. This
// keeps the renderers honest: output must stay valid markdown, not just
// look like it.
func headings(t *testing.T, doc string) []string {
	t.Helper()
	source := []byte(doc)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	var out []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			var sb strings.Builder
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					sb.Write(txt.Value(source))
				}
			}
			out = append(out, sb.String())
		}
		return ast.WalkContinue, nil
	})
	return out
}

func date(s string) time.Time {
	d, err := hesabna.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d.StartOfDay()
}

func TestTransactionsMarkdown(t *testing.T) {
	txs := []hesabna.Transaction{
		{ID: "a", Type: hesabna.Expense, Amount: hesabna.A(42.50), Category: "Food & Groceries", Description: "weekly shopping", Date: date("2026-08-20")},
		{ID: "b", Type: hesabna.Income, Amount: hesabna.A(5000), Category: "Salary", Description: "august pay", Date: date("2026-08-01")},
	}
	doc := TransactionsMarkdown(txs)

	hs := headings(t, doc)
	if len(hs) == 0 || hs[0] != "Transactions" {
		t.Fatalf("headings = %v, want Transactions first", hs)
	}
	for _, want := range []string{"weekly shopping", "Food & Groceries", "2026-08-20", "Salary"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestTransactionsMarkdownEmpty(t *testing.T) {
	doc := TransactionsMarkdown(nil)
	if !strings.Contains(doc, "No transactions recorded.") {
		t.Errorf("empty list should say so:\n%s", doc)
	}
}

func TestBudgetMarkdownStatus(t *testing.T) {
	lines := []hesabna.BudgetLine{
		{Category: "Food & Groceries", Limit: hesabna.A(1000), Spent: hesabna.A(850), Ratio: 0.85, AtRisk: true},
		{Category: "Transport", Limit: hesabna.A(500), Spent: hesabna.A(100), Ratio: 0.2},
		{Category: "Health", Spent: hesabna.A(70)},
		{Category: "Shopping", Limit: hesabna.A(300), Spent: hesabna.A(450), Ratio: 1.5, AtRisk: true},
	}
	doc := BudgetMarkdown(date("2026-08-15"), lines)

	for _, want := range []string{"August 2026", "at risk", "no limit", "OVER", "85%"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestHealthMarkdown(t *testing.T) {
	var h hesabna.HealthScore
	h.SavingsRate.Score = 15
	h.DebtLoad.Score = 25
	h.IncomeDiversity.Score = 5
	h.Total = 45
	doc := HealthMarkdown(h, nil)
	hs := headings(t, doc)
	if len(hs) == 0 || !strings.Contains(hs[0], "45 / 100") {
		t.Fatalf("headings = %v, want score heading", hs)
	}
	if !strings.Contains(doc, "15 / 25") {
		t.Errorf("factor points missing:\n%s", doc)
	}
}

func TestDueMarkdownEmpty(t *testing.T) {
	doc := DueMarkdown(nil, nil, nil)
	if !strings.Contains(doc, "All caught up") {
		t.Errorf("empty due list should say so:\n%s", doc)
	}
}

func TestDueMarkdownOverdue(t *testing.T) {
	d := hesabna.Debt{Name: "Car loan", MonthlyPayment: hesabna.A(1200), NextPaymentDate: hesabna.NewDate(2026, 8, 1)}
	doc := DueMarkdown(nil, nil, []hesabna.DebtReminder{{Debt: d, Overdue: true}})
	if !strings.Contains(doc, "OVERDUE") || !strings.Contains(doc, "Car loan") {
		t.Errorf("overdue reminder not rendered:\n%s", doc)
	}
}

func TestGoalsMarkdownProgress(t *testing.T) {
	goals := []hesabna.Goal{
		{ID: "g1", Name: "Vacation", TargetAmount: hesabna.A(2000), CurrentAmount: hesabna.A(500)},
		{ID: "g2", Name: "Safety net", TargetAmount: hesabna.A(10000), IsEmergencyFund: true},
	}
	doc := GoalsMarkdown(goals)
	for _, want := range []string{"25%", "Safety net (emergency fund)"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}
