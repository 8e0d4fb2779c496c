package hesabna

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

// newTestLedger opens a ledger over a fresh in-memory store with a fixed
// clock.
func newTestLedger(t *testing.T) (*Ledger, *MemStore) {
	t.Helper()
	store := NewMemStore()
	l, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	l.clock = func() time.Time { return time.Date(2026, 8, 15, 12, 0, 0, 0, time.Local) }
	return l, store
}

func expense(amount float64, category string, day int) Transaction {
	return Transaction{
		Type:     Expense,
		Amount:   A(amount),
		Category: category,
		Date:     time.Date(2026, 8, day, 10, 0, 0, 0, time.Local),
	}
}

func TestOpenSeedsDefaultCategories(t *testing.T) {
	l, _ := newTestLedger(t)
	cats := l.Categories()
	if len(cats) != len(DefaultExpenseCategories)+len(DefaultIncomeCategories) {
		t.Fatalf("got %d categories", len(cats))
	}
	for _, c := range cats {
		if !c.IsDefault {
			t.Errorf("seeded category %q not marked default", c.Name)
		}
	}
	// expense block first, each type densely ordered from 0
	if cats[0].Type != Expense {
		t.Errorf("first category is %s, want expense block first", cats[0].Type)
	}
	checkDenseOrder(t, cats)
}

// checkDenseOrder asserts per-type order values 0..n-1 with no gaps.
func checkDenseOrder(t *testing.T, cats []Category) {
	t.Helper()
	next := map[TransactionType]int{}
	for _, c := range cats {
		if c.Order != next[c.Type] {
			t.Fatalf("category %q (%s) has order %d, want %d", c.Name, c.Type, c.Order, next[c.Type])
		}
		next[c.Type]++
	}
}

func TestOpenDoesNotReseed(t *testing.T) {
	store := NewMemStore()
	l, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddCategory("Pets", Expense); err != nil {
		t.Fatal(err)
	}
	n := len(l.Categories())

	l2, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	if len(l2.Categories()) != n {
		t.Errorf("reopen changed category count: %d -> %d", n, len(l2.Categories()))
	}
}

func TestCategoryOrderMigration(t *testing.T) {
	// simulate a store written before ordering existed: categories without
	// an order field and no schema version
	store := NewMemStore()
	var batch Batch
	for i, name := range []string{"Zebra", "Apple", "Mango"} {
		id := fmt.Sprintf("c%d", i)
		raw := fmt.Sprintf(`{"id":%q,"name":%q,"type":"expense","isDefault":false}`, id, name)
		batch = append(batch, Op{Collection: ColCategories, ID: id, Data: json.RawMessage(raw)})
	}
	if err := store.Apply(batch); err != nil {
		t.Fatal(err)
	}

	l, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range l.Categories() {
		names = append(names, c.Name)
	}
	want := []string{"Apple", "Mango", "Zebra"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("after migration order = %v, want %v", names, want)
		}
	}
	checkDenseOrder(t, l.Categories())

	// version bumped: a second open must not resort
	if err := l.ReorderCategories(Expense, []string{"c0", "c1", "c2"}); err != nil {
		t.Fatal(err)
	}
	l2, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	if l2.Categories()[0].Name != "Zebra" {
		t.Errorf("migration ran twice, order = %q", l2.Categories()[0].Name)
	}
}

func TestBudgetCompleteness(t *testing.T) {
	l, _ := newTestLedger(t)
	budgets := l.Budgets()
	if len(budgets) != len(DefaultExpenseCategories) {
		t.Fatalf("got %d budget rows, want %d", len(budgets), len(DefaultExpenseCategories))
	}
	for _, b := range budgets {
		if !b.Limit.IsZero() {
			t.Errorf("synthesized row %q has limit %s", b.Category, b.Limit)
		}
	}

	// saving one limit must not destroy the synthesized rest
	if err := l.SaveBudgets([]Budget{{Category: "Transport", Limit: A(500)}}); err != nil {
		t.Fatal(err)
	}
	if len(l.Budgets()) != len(DefaultExpenseCategories) {
		t.Errorf("after save, got %d rows", len(l.Budgets()))
	}
}

func TestAddTransactionValidation(t *testing.T) {
	l, _ := newTestLedger(t)
	tests := []Transaction{
		{Type: "transfer", Amount: A(10), Category: "Other", Date: l.now()},
		{Type: Expense, Amount: A(-10), Category: "Other", Date: l.now()},
		{Type: Expense, Amount: A(10), Date: l.now()},
		{Type: Expense, Amount: A(10), Category: "Other"},
		{Type: Expense, Amount: A(10), Category: "Other", Date: l.now(), GoalID: "g", DebtID: "d"},
	}
	for i, tx := range tests {
		if _, err := l.AddTransaction(tx); err == nil {
			t.Errorf("case %d: invalid transaction accepted", i)
		}
		var verr *ValidationError
		if _, err := l.AddTransaction(tx); !errors.As(err, &verr) {
			t.Errorf("case %d: error %v is not a ValidationError", i, err)
		}
	}
	if len(l.Transactions()) != 0 {
		t.Error("rejected transactions leaked into the snapshot")
	}
}

func TestLinkedAmountImmutable(t *testing.T) {
	l, _ := newTestLedger(t)
	g, err := l.AddGoal("Vacation", A(1000), false)
	if err != nil {
		t.Fatal(err)
	}
	tx, err := l.AddFundsToGoal(g.ID, A(80))
	if err != nil {
		t.Fatal(err)
	}

	edit := tx
	edit.Amount = A(100)
	if err := l.UpdateTransaction(edit); !errors.Is(err, ErrLinkedAmount) {
		t.Fatalf("amount edit on linked transaction: err = %v, want ErrLinkedAmount", err)
	}

	// other fields stay editable
	edit = tx
	edit.Description = "first installment"
	if err := l.UpdateTransaction(edit); err != nil {
		t.Fatalf("description edit rejected: %v", err)
	}
	got, _ := l.Transaction(tx.ID)
	if got.Description != "first installment" || !got.Amount.Equal(A(80)) {
		t.Errorf("after edit: %+v", got)
	}
	if got.GoalID != g.ID {
		t.Error("link lost on edit")
	}
}

func TestDeleteGoalLinkedRollsBackFloored(t *testing.T) {
	l, _ := newTestLedger(t)
	g, err := l.AddGoal("Vacation", A(1000), false)
	if err != nil {
		t.Fatal(err)
	}
	tx, err := l.AddFundsToGoal(g.ID, A(80))
	if err != nil {
		t.Fatal(err)
	}

	// shrink the goal behind the transaction's back so the rollback would
	// underflow: 50 - 80 floors at 0
	got, _ := l.Goal(g.ID)
	var batch Batch
	got.CurrentAmount = A(50)
	if err := batch.Put(ColGoals, got.ID, got); err != nil {
		t.Fatal(err)
	}
	if err := l.commit(batch); err != nil {
		t.Fatal(err)
	}

	warnings, err := l.DeleteTransaction(tx.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("goal-linked delete warned: %v", warnings)
	}
	after, _ := l.Goal(g.ID)
	if !after.CurrentAmount.IsZero() {
		t.Errorf("goal amount = %s, want 0", after.CurrentAmount)
	}
	if _, ok := l.Transaction(tx.ID); ok {
		t.Error("transaction still present")
	}
}

func TestDeleteDebtLinkedWarnsWithoutRollback(t *testing.T) {
	l, _ := newTestLedger(t)
	d, err := l.AddDebt("Car loan", A(12000), A(1000), NewDate(2026, 8, 1))
	if err != nil {
		t.Fatal(err)
	}
	tx, err := l.RecordDebtPayment(d.ID, A(1000))
	if err != nil {
		t.Fatal(err)
	}
	after, _ := l.Debt(d.ID)
	if !after.RemainingAmount.Equal(A(11000)) {
		t.Fatalf("remaining = %s after payment", after.RemainingAmount)
	}

	warnings, err := l.DeleteTransaction(tx.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one", warnings)
	}
	unchanged, _ := l.Debt(d.ID)
	if !unchanged.RemainingAmount.Equal(A(11000)) {
		t.Errorf("debt balance rolled back to %s", unchanged.RemainingAmount)
	}
	if unchanged.NextPaymentDate != NewDate(2026, 9, 1) {
		t.Errorf("next payment date rolled back to %v", unchanged.NextPaymentDate)
	}
}

func TestDeleteTransactionAbsentIsNoop(t *testing.T) {
	l, _ := newTestLedger(t)
	warnings, err := l.DeleteTransaction("no-such-id")
	if err != nil || warnings != nil {
		t.Errorf("absent delete: warnings = %v, err = %v", warnings, err)
	}
}

func TestPersistenceFailureLeavesSnapshotIntact(t *testing.T) {
	l, store := newTestLedger(t)
	if _, err := l.AddTransaction(expense(40, "Transport", 10)); err != nil {
		t.Fatal(err)
	}

	store.FailNext = errors.New("disk full")
	_, err := l.AddTransaction(expense(60, "Transport", 11))
	if err == nil {
		t.Fatal("commit succeeded despite store failure")
	}
	if len(l.Transactions()) != 1 {
		t.Errorf("snapshot has %d transactions, want 1", len(l.Transactions()))
	}

	// the store recovered, the next mutation must work
	if _, err := l.AddTransaction(expense(60, "Transport", 11)); err != nil {
		t.Fatal(err)
	}
	if len(l.Transactions()) != 2 {
		t.Errorf("snapshot has %d transactions, want 2", len(l.Transactions()))
	}
}

func TestEmergencyFundUniqueness(t *testing.T) {
	l, _ := newTestLedger(t)
	g1, err := l.AddGoal("Safety net", A(10000), true)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := l.AddGoal("Bigger net", A(20000), true)
	if err != nil {
		t.Fatal(err)
	}
	first, _ := l.Goal(g1.ID)
	second, _ := l.Goal(g2.ID)
	if first.IsEmergencyFund {
		t.Error("first goal kept the emergency flag")
	}
	if !second.IsEmergencyFund {
		t.Error("second goal lost the emergency flag")
	}

	// flipping it back via update
	first.IsEmergencyFund = true
	if err := l.UpdateGoal(first); err != nil {
		t.Fatal(err)
	}
	second, _ = l.Goal(g2.ID)
	if second.IsEmergencyFund {
		t.Error("two emergency funds after update")
	}
}

func TestUpdateGoalPreservesCurrentAmount(t *testing.T) {
	l, _ := newTestLedger(t)
	g, err := l.AddGoal("Vacation", A(1000), false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddFundsToGoal(g.ID, A(300)); err != nil {
		t.Fatal(err)
	}

	edit, _ := l.Goal(g.ID)
	edit.Name = "Big vacation"
	edit.CurrentAmount = A(9999) // must be ignored
	if err := l.UpdateGoal(edit); err != nil {
		t.Fatal(err)
	}
	after, _ := l.Goal(g.ID)
	if after.Name != "Big vacation" {
		t.Errorf("name = %q", after.Name)
	}
	if !after.CurrentAmount.Equal(A(300)) {
		t.Errorf("current amount = %s, want 300", after.CurrentAmount)
	}
}

func TestUpdateDebtPreservesBalances(t *testing.T) {
	l, _ := newTestLedger(t)
	d, err := l.AddDebt("Car loan", A(12000), A(400), NewDate(2026, 9, 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.RecordDebtPayment(d.ID, A(400)); err != nil {
		t.Fatal(err)
	}

	edit, _ := l.Debt(d.ID)
	edit.Name = "Car loan (refinanced)"
	edit.MonthlyPayment = A(350)
	edit.TotalAmount = A(1)     // must be ignored
	edit.RemainingAmount = A(1) // must be ignored
	if err := l.UpdateDebt(edit); err != nil {
		t.Fatal(err)
	}
	after, _ := l.Debt(d.ID)
	if after.Name != "Car loan (refinanced)" || !after.MonthlyPayment.Equal(A(350)) {
		t.Errorf("debt = %+v", after)
	}
	if !after.TotalAmount.Equal(A(12000)) {
		t.Errorf("total = %s, want 12000", after.TotalAmount)
	}
	if !after.RemainingAmount.Equal(A(11600)) {
		t.Errorf("remaining = %s, want 11600", after.RemainingAmount)
	}

	edit.ID = "no-such-debt"
	if err := l.UpdateDebt(edit); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateSubscription(t *testing.T) {
	l, _ := newTestLedger(t)
	s, err := l.AddSubscription(Subscription{
		Name:            "MusicNow",
		Amount:          A(10),
		Frequency:       MonthlyFrequency,
		NextPaymentDate: NewDate(2026, 9, 1),
		Category:        BillsCategory,
	})
	if err != nil {
		t.Fatal(err)
	}

	edit := s
	edit.Amount = A(12)
	edit.Frequency = YearlyFrequency
	if err := l.UpdateSubscription(edit); err != nil {
		t.Fatal(err)
	}
	after, _ := l.Subscription(s.ID)
	if !after.Amount.Equal(A(12)) || after.Frequency != YearlyFrequency {
		t.Errorf("subscription = %+v", after)
	}

	edit.Frequency = "fortnightly"
	if err := l.UpdateSubscription(edit); err == nil {
		t.Error("invalid frequency accepted")
	}
	edit.Frequency = MonthlyFrequency
	edit.ID = "no-such-sub"
	if err := l.UpdateSubscription(edit); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddFundsToGoalAtomicPair(t *testing.T) {
	l, _ := newTestLedger(t)
	g, err := l.AddGoal("Vacation", A(1000), false)
	if err != nil {
		t.Fatal(err)
	}
	tx, err := l.AddFundsToGoal(g.ID, A(250))
	if err != nil {
		t.Fatal(err)
	}
	if tx.Type != Expense || tx.Category != SavingsCategory || tx.GoalID != g.ID {
		t.Errorf("funding transaction = %+v", tx)
	}
	after, _ := l.Goal(g.ID)
	if !after.CurrentAmount.Equal(A(250)) {
		t.Errorf("goal amount = %s", after.CurrentAmount)
	}

	if _, err := l.AddFundsToGoal(g.ID, A(0)); err == nil {
		t.Error("zero funding accepted")
	}
	if _, err := l.AddFundsToGoal("missing", A(10)); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing goal: err = %v", err)
	}
}

func TestSettingsDefaultsAndSave(t *testing.T) {
	l, store := newTestLedger(t)
	s := l.Settings()
	if !s.MonthlyIncome.Equal(A(5000)) || s.Theme != "light" || s.AutoLockMinutes != 15 {
		t.Errorf("defaults = %+v", s)
	}

	s.Name = "Sara"
	s.MonthlyIncome = A(7500)
	if err := l.SaveSettings(s); err != nil {
		t.Fatal(err)
	}
	l2, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	if got := l2.Settings(); got.Name != "Sara" || !got.MonthlyIncome.Equal(A(7500)) {
		t.Errorf("reloaded settings = %+v", got)
	}
}

func TestWipe(t *testing.T) {
	l, store := newTestLedger(t)
	if _, err := l.AddTransaction(expense(40, "Transport", 10)); err != nil {
		t.Fatal(err)
	}
	auth := NewAuth(store)
	if err := auth.SetSecret("hunter2"); err != nil {
		t.Fatal(err)
	}

	if err := l.Wipe(); err != nil {
		t.Fatal(err)
	}
	if len(l.Transactions()) != 0 || len(l.Categories()) != 0 {
		t.Error("snapshot not cleared")
	}
	if has, _ := auth.HasSecret(); has {
		t.Error("secret survived the wipe")
	}

	// reopening reseeds defaults
	l2, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	if len(l2.Categories()) == 0 {
		t.Error("defaults not reseeded after wipe")
	}
}
