package hesabna

// Debt is an obligation paid down in monthly installments. TotalAmount is
// fixed at creation; RemainingAmount starts equal to it and decreases only
// through recorded payments. An overpayment may push it below zero, that is
// not clamped.
type Debt struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TotalAmount     Amount `json:"totalAmount"`
	RemainingAmount Amount `json:"remainingAmount"`
	MonthlyPayment  Amount `json:"monthlyPayment"`
	NextPaymentDate Date   `json:"nextPaymentDate"`
}

// Validate rejects a debt before any mutation is attempted.
func (d Debt) Validate() error {
	if d.Name == "" {
		return invalidf("name", "is required")
	}
	if d.TotalAmount.IsNegative() || d.TotalAmount.IsZero() {
		return invalidf("totalAmount", "must be positive")
	}
	if d.MonthlyPayment.IsNegative() {
		return invalidf("monthlyPayment", "must not be negative")
	}
	if d.RemainingAmount.GreaterThan(d.TotalAmount) {
		return invalidf("remainingAmount", "must not exceed totalAmount")
	}
	if d.NextPaymentDate.IsZero() {
		return invalidf("nextPaymentDate", "is required")
	}
	return nil
}
