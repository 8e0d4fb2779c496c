package hesabna

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// Fallback is the category transactions are reassigned to when their
// category is deleted. One exists per type in the default seed and it cannot
// be removed.
const Fallback = "Other"

// Categories used by the engine when it materializes payment transactions.
const (
	SavingsCategory = "Savings & Investment" // goal funding
	DebtsCategory   = "Debts & Loans"        // debt payments
	BillsCategory   = "Bills & Utilities"    // detected subscriptions
)

// DefaultExpenseCategories is the fixed seed of expense categories, in
// display order.
var DefaultExpenseCategories = []string{
	"Food & Groceries",
	"Transport",
	"Housing & Rent",
	BillsCategory,
	"Health",
	"Education",
	"Shopping",
	"Entertainment",
	SavingsCategory,
	DebtsCategory,
	Fallback,
}

// DefaultIncomeCategories is the fixed seed of income categories, in display
// order.
var DefaultIncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investments",
	Fallback,
}

// Category names a group of transactions. Within a type, names are unique
// and Order values form a dense 0-based sequence controlling display order.
// Default categories are immutable: they can be neither renamed nor deleted.
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	IsDefault bool            `json:"isDefault"`
	Order     int             `json:"order"`
}

// Validate rejects a category before any mutation is attempted.
func (c Category) Validate() error {
	if c.Name == "" {
		return invalidf("name", "is required")
	}
	if c.Type != Income && c.Type != Expense {
		return invalidf("type", "must be income or expense, got %q", c.Type)
	}
	return nil
}

// defaultCategories builds the full default seed with dense per-type order.
func defaultCategories() []Category {
	var cats []Category
	for i, name := range DefaultExpenseCategories {
		cats = append(cats, Category{ID: uuid.NewString(), Name: name, Type: Expense, IsDefault: true, Order: i})
	}
	for i, name := range DefaultIncomeCategories {
		cats = append(cats, Category{ID: uuid.NewString(), Name: name, Type: Income, IsDefault: true, Order: i})
	}
	return cats
}

// sortCategories orders categories by (type, order), expenses first.
func sortCategories(cats []Category) {
	slices.SortStableFunc(cats, func(a, b Category) int {
		if a.Type != b.Type {
			// expense sorts before income, matching the seed layout
			if a.Type == Expense {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Order, b.Order)
	})
}

// renumber reassigns dense 0-based Order values per type, preserving the
// current relative order. It returns only the categories whose Order
// actually changed.
func renumber(cats []Category) []Category {
	sortCategories(cats)
	next := map[TransactionType]int{}
	var changed []Category
	for i := range cats {
		want := next[cats[i].Type]
		next[cats[i].Type]++
		if cats[i].Order != want {
			cats[i].Order = want
			changed = append(changed, cats[i])
		}
	}
	return changed
}
