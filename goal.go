package hesabna

import "time"

// Goal is a savings target. CurrentAmount only moves through the add-funds
// operation, or backwards when a linked funding transaction is deleted. At
// most one goal is flagged as the emergency fund.
type Goal struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TargetAmount    Amount    `json:"targetAmount"`
	CurrentAmount   Amount    `json:"currentAmount"`
	CreatedAt       time.Time `json:"createdAt"`
	IsEmergencyFund bool      `json:"isEmergencyFund,omitempty"`
}

// Validate rejects a goal before any mutation is attempted.
func (g Goal) Validate() error {
	if g.Name == "" {
		return invalidf("name", "is required")
	}
	if g.TargetAmount.IsNegative() || g.TargetAmount.IsZero() {
		return invalidf("targetAmount", "must be positive")
	}
	if g.CurrentAmount.IsNegative() {
		return invalidf("currentAmount", "must not be negative")
	}
	return nil
}
