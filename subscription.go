package hesabna

import "fmt"

// Frequency is a subscription billing period.
type Frequency string

const (
	MonthlyFrequency Frequency = "monthly"
	YearlyFrequency  Frequency = "yearly"
)

// ParseFrequency parses a string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case MonthlyFrequency, YearlyFrequency:
		return Frequency(s), nil
	}
	return "", fmt.Errorf("unknown frequency: %q", s)
}

// Subscription is a recurring service charge. Recording a payment creates a
// linked expense transaction and advances NextPaymentDate by one period.
type Subscription struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Amount          Amount    `json:"amount"`
	Frequency       Frequency `json:"frequency"`
	NextPaymentDate Date      `json:"nextPaymentDate"`
	Category        string    `json:"category"`
}

// Validate rejects a subscription before any mutation is attempted.
func (s Subscription) Validate() error {
	if s.Name == "" {
		return invalidf("name", "is required")
	}
	if s.Amount.IsNegative() || s.Amount.IsZero() {
		return invalidf("amount", "must be positive")
	}
	if _, err := ParseFrequency(string(s.Frequency)); err != nil {
		return invalidf("frequency", "%v", err)
	}
	if s.NextPaymentDate.IsZero() {
		return invalidf("nextPaymentDate", "is required")
	}
	if s.Category == "" {
		return invalidf("category", "is required")
	}
	return nil
}
