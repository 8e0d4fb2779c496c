// Package advisor is the AI suggestion boundary. Every operation is
// advisory and best-effort: a failure, a missing API key or thin input data
// yields a neutral value, never an error that could block a ledger
// mutation. Nothing in this package writes to the store; callers decide
// what, if anything, to do with a suggestion.
package advisor

import (
	"context"

	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
)

// Plan is a what-if scenario projection.
type Plan struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	Impact          []string `json:"impact"`
	Recommendations []string `json:"recommendations"`
}

// EmergencyFundEstimate sizes an emergency fund from spending history.
type EmergencyFundEstimate struct {
	EssentialCategories []string `json:"essentialCategories"`
	MonthlyEssentials   float64  `json:"monthlyEssentials"`
	ThreeMonthTarget    float64  `json:"threeMonthTarget"`
	SixMonthTarget      float64  `json:"sixMonthTarget"`
}

// HealthTips is actionable advice derived from a health score breakdown.
type HealthTips struct {
	Summary string   `json:"summary"`
	Tips    []string `json:"tips"`
}

// InvoiceDetails is the structured content extracted from a receipt image.
type InvoiceDetails struct {
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
}

// Advisor produces suggestions from ledger data.
type Advisor interface {
	// SuggestCategory proposes an expense category for a description.
	// Empty means no suggestion.
	SuggestCategory(ctx context.Context, description string, categories []string) string

	// SuggestBudgets proposes monthly limits from spending history.
	SuggestBudgets(ctx context.Context, txs []hesabna.Transaction, categories []string) []hesabna.Budget

	// AnalyzeSpending narrates recent spending patterns in markdown.
	AnalyzeSpending(ctx context.Context, txs []hesabna.Transaction) string

	// PlanScenario projects a free-form what-if question against a
	// financial snapshot.
	PlanScenario(ctx context.Context, query string, snapshot Snapshot) *Plan

	// EstimateEmergencyFund sizes an emergency fund. Needs at least
	// minEstimateTxs expense transactions from the last three months.
	EstimateEmergencyFund(ctx context.Context, txs []hesabna.Transaction) *EmergencyFundEstimate

	// HealthTips turns a score breakdown into advice.
	HealthTips(ctx context.Context, score hesabna.HealthScore) *HealthTips

	// DetectSubscriptions finds recurring merchant patterns. Needs at
	// least minDetectTxs candidate transactions.
	DetectSubscriptions(ctx context.Context, txs []hesabna.Transaction) []hesabna.Subscription

	// ParseInvoice extracts structured details from a receipt image.
	ParseInvoice(ctx context.Context, image []byte, mimeType string) *InvoiceDetails
}

// Snapshot is the financial summary handed to the planner. Amounts are
// plain floats: this crosses a text boundary, not the ledger.
type Snapshot struct {
	MonthlyIncome   float64          `json:"monthlyIncome"`
	MonthlyExpenses float64          `json:"monthlyExpenses"`
	Goals           []SnapshotGoal   `json:"goals,omitempty"`
	Debts           []SnapshotDebt   `json:"debts,omitempty"`
	Budgets         []SnapshotBudget `json:"budgets,omitempty"`
}

type SnapshotGoal struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
}

type SnapshotDebt struct {
	Name            string  `json:"name"`
	RemainingAmount float64 `json:"remainingAmount"`
	MonthlyPayment  float64 `json:"monthlyPayment"`
}

type SnapshotBudget struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

// TakeSnapshot condenses a ledger into the planner's view of it.
func TakeSnapshot(l *hesabna.Ledger, income, expenses hesabna.Amount) Snapshot {
	s := Snapshot{
		MonthlyIncome:   income.InexactFloat64(),
		MonthlyExpenses: expenses.InexactFloat64(),
	}
	for _, g := range l.Goals() {
		s.Goals = append(s.Goals, SnapshotGoal{g.Name, g.TargetAmount.InexactFloat64(), g.CurrentAmount.InexactFloat64()})
	}
	for _, d := range l.Debts() {
		s.Debts = append(s.Debts, SnapshotDebt{d.Name, d.RemainingAmount.InexactFloat64(), d.MonthlyPayment.InexactFloat64()})
	}
	for _, b := range l.Budgets() {
		s.Budgets = append(s.Budgets, SnapshotBudget{b.Category, b.Limit.InexactFloat64()})
	}
	return s
}

// Minimum history before an estimate or detection is attempted; thinner
// data produces noise, not signal.
const (
	minEstimateTxs = 5
	minDetectTxs   = 3
)

// Offline is the no-op Advisor used when no API key is configured. Every
// method returns its neutral value.
type Offline struct{}

var _ Advisor = Offline{}

func (Offline) SuggestCategory(context.Context, string, []string) string { return "" }
func (Offline) SuggestBudgets(context.Context, []hesabna.Transaction, []string) []hesabna.Budget {
	return nil
}
func (Offline) AnalyzeSpending(context.Context, []hesabna.Transaction) string { return "" }
func (Offline) PlanScenario(context.Context, string, Snapshot) *Plan          { return nil }
func (Offline) EstimateEmergencyFund(context.Context, []hesabna.Transaction) *EmergencyFundEstimate {
	return nil
}
func (Offline) HealthTips(context.Context, hesabna.HealthScore) *HealthTips { return nil }
func (Offline) DetectSubscriptions(context.Context, []hesabna.Transaction) []hesabna.Subscription {
	return nil
}
func (Offline) ParseInvoice(context.Context, []byte, string) *InvoiceDetails { return nil }
