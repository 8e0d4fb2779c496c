package hesabna

import (
	"testing"
	"time"
)

func TestArchiveConservation(t *testing.T) {
	l, _ := newTestLedger(t)

	add := func(typ TransactionType, amount float64, category string, day int) {
		t.Helper()
		_, err := l.AddTransaction(Transaction{
			Type: typ, Amount: A(amount), Category: category,
			Date: time.Date(2026, 7, day, 10, 0, 0, 0, time.Local),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	add(Income, 5000, "Salary", 1)
	add(Income, 300, "Freelance", 12)
	add(Expense, 120, "Food & Groceries", 3)
	add(Expense, 80, "Food & Groceries", 20)
	add(Expense, 45, "Transport", 8)
	// outside the range, must survive
	outside, err := l.AddTransaction(expense(60, "Transport", 2)) // 2026-08-02
	if err != nil {
		t.Fatal(err)
	}
	// recurring template inside the range, must survive
	tpl, err := l.AddTransaction(Transaction{
		Type: Expense, Amount: A(900), Category: "Housing & Rent",
		Date:        time.Date(2026, 7, 5, 0, 0, 0, 0, time.Local),
		IsRecurring: true, Recurrence: Monthly,
	})
	if err != nil {
		t.Fatal(err)
	}

	incomeBefore, expenseBefore := l.MonthTotals(time.Date(2026, 7, 1, 0, 0, 0, 0, time.Local))

	result, err := l.Archive(NewDate(2026, 7, 1), NewDate(2026, 7, 31))
	if err != nil {
		t.Fatal(err)
	}
	if result.Archived != 5 {
		t.Errorf("archived = %d, want 5", result.Archived)
	}
	// one summary per distinct (type, category) pair
	if len(result.Summaries) != 4 {
		t.Fatalf("summaries = %d, want 4", len(result.Summaries))
	}

	incomeAfter, expenseAfter := l.MonthTotals(time.Date(2026, 7, 1, 0, 0, 0, 0, time.Local))
	if !incomeAfter.Equal(incomeBefore) || !expenseAfter.Equal(expenseBefore) {
		t.Errorf("totals changed: income %s -> %s, expense %s -> %s",
			incomeBefore, incomeAfter, expenseBefore, expenseAfter)
	}

	if _, ok := l.Transaction(outside.ID); !ok {
		t.Error("transaction outside the range was archived")
	}
	if _, ok := l.Transaction(tpl.ID); !ok {
		t.Error("recurring template was archived")
	}

	// summaries are dated at the end of the range and carry the range in
	// their description
	for _, s := range result.Summaries {
		if DateOf(s.Date) != NewDate(2026, 7, 31) {
			t.Errorf("summary dated %v", s.Date)
		}
		if s.IsRecurring || s.Linked() {
			t.Errorf("summary has template or link fields: %+v", s)
		}
	}
	food, _ := func() (Transaction, bool) {
		for _, s := range result.Summaries {
			if s.Category == "Food & Groceries" {
				return s, true
			}
		}
		return Transaction{}, false
	}()
	if !food.Amount.Equal(A(200)) {
		t.Errorf("food summary = %s, want 200", food.Amount)
	}
	if food.Description != "Archived expense summary 2026-07-01..2026-07-31" {
		t.Errorf("description = %q", food.Description)
	}
}

func TestArchiveEmptyRangeIsNoop(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.AddTransaction(expense(60, "Transport", 2)); err != nil {
		t.Fatal(err)
	}
	result, err := l.Archive(NewDate(2020, 1, 1), NewDate(2020, 12, 31))
	if err != nil {
		t.Fatal(err)
	}
	if result.Archived != 0 || len(result.Summaries) != 0 {
		t.Errorf("result = %+v, want no-op", result)
	}
	if len(l.Transactions()) != 1 {
		t.Error("no-op archive changed the ledger")
	}
}

func TestArchiveInvertedRange(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Archive(NewDate(2026, 7, 31), NewDate(2026, 7, 1)); err == nil {
		t.Error("inverted range accepted")
	}
}

func TestArchiveBoundaryDaysIncluded(t *testing.T) {
	l, _ := newTestLedger(t)
	first, _ := l.AddTransaction(Transaction{
		Type: Expense, Amount: A(10), Category: "Other",
		Date: time.Date(2026, 7, 1, 0, 0, 0, 0, time.Local),
	})
	last, _ := l.AddTransaction(Transaction{
		Type: Expense, Amount: A(10), Category: "Other",
		Date: time.Date(2026, 7, 31, 23, 59, 0, 0, time.Local),
	})
	result, err := l.Archive(NewDate(2026, 7, 1), NewDate(2026, 7, 31))
	if err != nil {
		t.Fatal(err)
	}
	if result.Archived != 2 {
		t.Errorf("archived = %d, want both boundary transactions", result.Archived)
	}
	if _, ok := l.Transaction(first.ID); ok {
		t.Error("first-day transaction survived")
	}
	if _, ok := l.Transaction(last.ID); ok {
		t.Error("last-day transaction survived")
	}
}
