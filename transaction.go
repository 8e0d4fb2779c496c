package hesabna

import (
	"fmt"
	"time"
)

// TransactionType discriminates income from expense.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", fmt.Errorf("unknown transaction type: %q", s)
}

// Recurrence is the unit a recurring template advances by on confirmation.
type Recurrence string

const (
	Daily   Recurrence = "daily"
	Weekly  Recurrence = "weekly"
	Monthly Recurrence = "monthly"
	Yearly  Recurrence = "yearly"
)

// ParseRecurrence parses a string into a Recurrence.
func ParseRecurrence(s string) (Recurrence, error) {
	switch Recurrence(s) {
	case Daily, Weekly, Monthly, Yearly:
		return Recurrence(s), nil
	}
	return "", fmt.Errorf("unknown recurrence: %q", s)
}

// Transaction is a single income or expense event. A recurring transaction is
// a standing template: confirming it materializes a settlement transaction
// and advances the template date, it is never deleted by the engine.
//
// At most one of GoalID, DebtID and SubscriptionID is set: a payment
// transaction belongs to exactly one parent. The link is a weak reference
// used for lookup and consistency propagation, not ownership.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      Amount          `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	IsRecurring bool            `json:"isRecurring"`
	Recurrence  Recurrence      `json:"recurrence,omitempty"`
	Invoice     string          `json:"invoiceImage,omitempty"`

	GoalID         string `json:"goalId,omitempty"`
	DebtID         string `json:"debtId,omitempty"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
}

// Linked reports whether the transaction references a parent entity.
func (t Transaction) Linked() bool {
	return t.GoalID != "" || t.DebtID != "" || t.SubscriptionID != ""
}

// Validate rejects a transaction before any mutation is attempted.
func (t Transaction) Validate() error {
	if t.Type != Income && t.Type != Expense {
		return invalidf("type", "must be income or expense, got %q", t.Type)
	}
	if t.Amount.IsNegative() {
		return invalidf("amount", "must not be negative")
	}
	if t.Category == "" {
		return invalidf("category", "is required")
	}
	if t.Date.IsZero() {
		return invalidf("date", "is required")
	}
	if t.Recurrence != "" {
		if _, err := ParseRecurrence(string(t.Recurrence)); err != nil {
			return invalidf("recurrence", "%v", err)
		}
	}
	links := 0
	for _, id := range []string{t.GoalID, t.DebtID, t.SubscriptionID} {
		if id != "" {
			links++
		}
	}
	if links > 1 {
		return invalidf("links", "a transaction is linked to at most one parent")
	}
	return nil
}
