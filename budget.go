package hesabna

// Budget is a monthly spending limit for one expense category. The category
// name is the key: budgets and expense categories are kept in 1:1
// correspondence, a missing row is synthesized with limit 0 on every reload.
type Budget struct {
	Category string `json:"category"`
	Limit    Amount `json:"limit"`
}

// Validate rejects a budget row before any mutation is attempted.
func (b Budget) Validate() error {
	if b.Category == "" {
		return invalidf("category", "is required")
	}
	if b.Limit.IsNegative() {
		return invalidf("limit", "must not be negative")
	}
	return nil
}
