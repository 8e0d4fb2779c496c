package advisor

import (
	"context"
	"testing"

	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
)

// The offline advisor must be safe to call unconditionally: neutral values,
// no panics, no errors to handle.
func TestOfflineIsNeutral(t *testing.T) {
	ctx := context.Background()
	var a Advisor = Offline{}

	if got := a.SuggestCategory(ctx, "uber ride downtown", []string{"Transport"}); got != "" {
		t.Errorf("SuggestCategory = %q, want empty", got)
	}
	if got := a.SuggestBudgets(ctx, nil, nil); got != nil {
		t.Errorf("SuggestBudgets = %v, want nil", got)
	}
	if got := a.AnalyzeSpending(ctx, nil); got != "" {
		t.Errorf("AnalyzeSpending = %q, want empty", got)
	}
	if got := a.PlanScenario(ctx, "what if I buy a car", Snapshot{}); got != nil {
		t.Errorf("PlanScenario = %v, want nil", got)
	}
	if got := a.EstimateEmergencyFund(ctx, nil); got != nil {
		t.Errorf("EstimateEmergencyFund = %v, want nil", got)
	}
	if got := a.HealthTips(ctx, hesabna.HealthScore{}); got != nil {
		t.Errorf("HealthTips = %v, want nil", got)
	}
	if got := a.DetectSubscriptions(ctx, nil); got != nil {
		t.Errorf("DetectSubscriptions = %v, want nil", got)
	}
	if got := a.ParseInvoice(ctx, nil, "image/png"); got != nil {
		t.Errorf("ParseInvoice = %v, want nil", got)
	}
}

func TestTakeSnapshot(t *testing.T) {
	l, err := hesabna.Open(hesabna.NewMemStore())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddGoal("Vacation", hesabna.A(3000), false); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddDebt("Car loan", hesabna.A(12000), hesabna.A(1000), hesabna.NewDate(2026, 10, 1)); err != nil {
		t.Fatal(err)
	}

	s := TakeSnapshot(l, hesabna.A(5000), hesabna.A(3200))
	if s.MonthlyIncome != 5000 || s.MonthlyExpenses != 3200 {
		t.Errorf("totals = %v / %v", s.MonthlyIncome, s.MonthlyExpenses)
	}
	if len(s.Goals) != 1 || s.Goals[0].Name != "Vacation" {
		t.Errorf("goals = %+v", s.Goals)
	}
	if len(s.Debts) != 1 || s.Debts[0].MonthlyPayment != 1000 {
		t.Errorf("debts = %+v", s.Debts)
	}
	// every expense category from the seeded defaults gets a budget row
	if len(s.Budgets) != len(hesabna.DefaultExpenseCategories) {
		t.Errorf("budgets = %d rows, want %d", len(s.Budgets), len(hesabna.DefaultExpenseCategories))
	}
}
