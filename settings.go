package hesabna

// UserSettings is the singleton profile record, stored in the key/value area
// of the store rather than in a collection.
type UserSettings struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	MonthlyIncome   Amount `json:"monthlyIncome"`
	Theme           string `json:"theme"`
	AutoLockMinutes int    `json:"autoLockMinutes"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() UserSettings {
	return UserSettings{
		Name:            "New user",
		MonthlyIncome:   A(5000),
		Theme:           "light",
		AutoLockMinutes: 15,
	}
}

// Validate rejects settings before any mutation is attempted.
func (s UserSettings) Validate() error {
	if s.MonthlyIncome.IsNegative() {
		return invalidf("monthlyIncome", "must not be negative")
	}
	if s.Theme != "light" && s.Theme != "dark" {
		return invalidf("theme", "must be light or dark, got %q", s.Theme)
	}
	if s.AutoLockMinutes < 0 {
		return invalidf("autoLockMinutes", "must not be negative")
	}
	return nil
}
