package hesabna

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Ledger is the authoritative owner of every entity collection. It holds a
// consistent in-memory snapshot and routes every mutation through a single
// validate, commit-batch, reload cycle: one atomic unit per user intent, no
// partial visibility.
//
// The model is single writer, request/response. There is no background
// scheduler: recurrence advancement only happens in response to an explicit
// confirmed action.
type Ledger struct {
	store Store
	clock func() time.Time

	transactions  []Transaction // date descending
	categories    []Category    // (type, order) ascending
	goals         []Goal
	debts         []Debt
	budgets       []Budget
	subscriptions []Subscription
	settings      UserSettings
}

// schemaVersion is the current store schema. Version 1 introduced dense
// per-type category ordering.
const schemaVersion = 1

// Open initializes a Ledger over a store. Initialization is linear and two
// phase: seed the default categories if the collection is empty, run pending
// schema migrations, then load the snapshot.
func Open(store Store) (*Ledger, error) {
	l := &Ledger{store: store, clock: time.Now}

	if err := l.seedDefaults(); err != nil {
		return nil, err
	}
	if err := l.migrate(); err != nil {
		return nil, err
	}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// seedDefaults writes the default category set in one batch when the
// categories collection is empty (first run).
func (l *Ledger) seedDefaults() error {
	records, err := l.store.List(ColCategories)
	if err != nil {
		return fmt.Errorf("could not load categories: %w", err)
	}
	if len(records) > 0 {
		return nil
	}
	var batch Batch
	for _, c := range defaultCategories() {
		if err := batch.Put(ColCategories, c.ID, c); err != nil {
			return err
		}
	}
	if err := l.store.Apply(batch); err != nil {
		return fmt.Errorf("could not seed default categories: %w", err)
	}
	return nil
}

// migrate runs pending schema migrations exactly once, keyed by the stored
// schema version. The only migration so far assigns dense per-type order to
// category sets written before ordering existed.
func (l *Ledger) migrate() error {
	version := 0
	if raw, ok, err := l.store.Get(KeySchemaVersion); err != nil {
		return err
	} else if ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			version, _ = strconv.Atoi(s)
		}
	}
	if version >= schemaVersion {
		return nil
	}

	if err := l.migrateCategoryOrder(); err != nil {
		return err
	}

	data, err := json.Marshal(strconv.Itoa(schemaVersion))
	if err != nil {
		return err
	}
	return l.store.Set(KeySchemaVersion, data)
}

// migrateCategoryOrder reassigns dense 0-based order per type, alphabetical,
// to any category set where at least one record lacks an order field.
func (l *Ledger) migrateCategoryOrder() error {
	records, err := l.store.List(ColCategories)
	if err != nil {
		return err
	}
	missing := false
	for _, r := range records {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(r.Data, &probe); err != nil {
			return fmt.Errorf("corrupt category record %q: %w", r.ID, err)
		}
		if _, ok := probe["order"]; !ok {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}

	cats, err := listInto[Category](l.store, ColCategories)
	if err != nil {
		return err
	}
	slices.SortFunc(cats, func(a, b Category) int {
		if a.Type != b.Type {
			if a.Type == Expense {
				return -1
			}
			return 1
		}
		return slices.Compare([]byte(a.Name), []byte(b.Name))
	})
	next := map[TransactionType]int{}
	var batch Batch
	for i := range cats {
		cats[i].Order = next[cats[i].Type]
		next[cats[i].Type]++
		if err := batch.Put(ColCategories, cats[i].ID, cats[i]); err != nil {
			return err
		}
	}
	if err := l.store.Apply(batch); err != nil {
		return fmt.Errorf("category order migration failed: %w", err)
	}
	return nil
}

// Reload rebuilds the snapshot from the store. Expense categories without a
// budget row get one synthesized with limit 0; synthesized rows live in the
// snapshot only and are not persisted until the user saves budgets. Orphan
// budget rows whose category is gone are kept.
func (l *Ledger) Reload() error {
	var err error
	if l.transactions, err = listInto[Transaction](l.store, ColTransactions); err != nil {
		return fmt.Errorf("could not load transactions: %w", err)
	}
	if l.categories, err = listInto[Category](l.store, ColCategories); err != nil {
		return fmt.Errorf("could not load categories: %w", err)
	}
	if l.goals, err = listInto[Goal](l.store, ColGoals); err != nil {
		return fmt.Errorf("could not load goals: %w", err)
	}
	if l.debts, err = listInto[Debt](l.store, ColDebts); err != nil {
		return fmt.Errorf("could not load debts: %w", err)
	}
	if l.budgets, err = listInto[Budget](l.store, ColBudgets); err != nil {
		return fmt.Errorf("could not load budgets: %w", err)
	}
	if l.subscriptions, err = listInto[Subscription](l.store, ColSubscriptions); err != nil {
		return fmt.Errorf("could not load subscriptions: %w", err)
	}

	slices.SortStableFunc(l.transactions, func(a, b Transaction) int {
		return b.Date.Compare(a.Date) // newest first
	})
	sortCategories(l.categories)
	slices.SortStableFunc(l.goals, func(a, b Goal) int { return a.CreatedAt.Compare(b.CreatedAt) })
	slices.SortStableFunc(l.subscriptions, func(a, b Subscription) int {
		if a.NextPaymentDate.Before(b.NextPaymentDate) {
			return -1
		}
		if a.NextPaymentDate.After(b.NextPaymentDate) {
			return 1
		}
		return 0
	})

	// budget completeness: every expense category has a row
	have := make(map[string]bool, len(l.budgets))
	for _, b := range l.budgets {
		have[b.Category] = true
	}
	for _, c := range l.categories {
		if c.Type == Expense && !have[c.Name] {
			l.budgets = append(l.budgets, Budget{Category: c.Name})
		}
	}

	l.settings = DefaultSettings()
	if raw, ok, err := l.store.Get(KeySettings); err != nil {
		return err
	} else if ok {
		if err := json.Unmarshal(raw, &l.settings); err != nil {
			return fmt.Errorf("corrupt settings: %w", err)
		}
	}
	return nil
}

// commit applies a batch and refreshes the snapshot. A commit failure leaves
// the prior state entirely intact and is propagated to the caller; there is
// no automatic retry.
func (l *Ledger) commit(batch Batch) error {
	if err := l.store.Apply(batch); err != nil {
		return fmt.Errorf("batch commit: %w", err)
	}
	return l.Reload()
}

func (l *Ledger) now() time.Time { return l.clock() }

// Snapshot accessors. Slices are copies: the snapshot only changes through
// mutations.

// Transactions returns all transactions sorted by date descending.
func (l *Ledger) Transactions() []Transaction { return slices.Clone(l.transactions) }

// Categories returns all categories sorted by (type, order).
func (l *Ledger) Categories() []Category { return slices.Clone(l.categories) }

// Goals returns all goals.
func (l *Ledger) Goals() []Goal { return slices.Clone(l.goals) }

// Debts returns all debts.
func (l *Ledger) Debts() []Debt { return slices.Clone(l.debts) }

// Budgets returns the reconciled budget set, one row per expense category.
func (l *Ledger) Budgets() []Budget { return slices.Clone(l.budgets) }

// Subscriptions returns all subscriptions sorted by next payment date.
func (l *Ledger) Subscriptions() []Subscription { return slices.Clone(l.subscriptions) }

// Settings returns the user settings.
func (l *Ledger) Settings() UserSettings { return l.settings }

// Transaction looks a transaction up by id.
func (l *Ledger) Transaction(id string) (Transaction, bool) {
	for _, t := range l.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}

// Goal looks a goal up by id.
func (l *Ledger) Goal(id string) (Goal, bool) {
	for _, g := range l.goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// Debt looks a debt up by id.
func (l *Ledger) Debt(id string) (Debt, bool) {
	for _, d := range l.debts {
		if d.ID == id {
			return d, true
		}
	}
	return Debt{}, false
}

// Subscription looks a subscription up by id.
func (l *Ledger) Subscription(id string) (Subscription, bool) {
	for _, s := range l.subscriptions {
		if s.ID == id {
			return s, true
		}
	}
	return Subscription{}, false
}

func (l *Ledger) category(id string) (Category, bool) {
	for _, c := range l.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// --- Transactions ---

// AddTransaction validates and records a new transaction.
func (l *Ledger) AddTransaction(t Transaction) (Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	var batch Batch
	if err := batch.Put(ColTransactions, t.ID, t); err != nil {
		return Transaction{}, err
	}
	if err := l.commit(batch); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// UpdateTransaction edits an existing transaction. The amount of a linked
// transaction is immutable (ErrLinkedAmount); every other field may change.
// Parent links themselves are never edited through this operation.
func (l *Ledger) UpdateTransaction(t Transaction) error {
	old, ok := l.Transaction(t.ID)
	if !ok {
		return fmt.Errorf("transaction %q: %w", t.ID, ErrNotFound)
	}
	if old.Linked() && !t.Amount.Equal(old.Amount) {
		return ErrLinkedAmount
	}
	t.GoalID, t.DebtID, t.SubscriptionID = old.GoalID, old.DebtID, old.SubscriptionID
	if err := t.Validate(); err != nil {
		return err
	}
	var batch Batch
	if err := batch.Put(ColTransactions, t.ID, t); err != nil {
		return err
	}
	return l.commit(batch)
}

// DeleteTransaction removes a transaction. An absent id is a no-op.
//
// Deleting a goal-linked transaction rolls the goal's current amount back by
// the transaction amount, floored at zero. Deleting a debt- or
// subscription-linked transaction deliberately does NOT roll back the
// parent's balance or next payment date; the returned warnings surface that
// to the user instead of diverging silently.
func (l *Ledger) DeleteTransaction(id string) (warnings []string, err error) {
	t, ok := l.Transaction(id)
	if !ok {
		return nil, nil
	}
	var batch Batch
	if t.GoalID != "" {
		if g, ok := l.Goal(t.GoalID); ok {
			g.CurrentAmount = g.CurrentAmount.Sub(t.Amount).Floor0()
			if err := batch.Put(ColGoals, g.ID, g); err != nil {
				return nil, err
			}
		}
	}
	if t.DebtID != "" {
		warnings = append(warnings, "the linked debt's remaining balance and next payment date were not adjusted")
	}
	if t.SubscriptionID != "" {
		warnings = append(warnings, "the linked subscription's next payment date was not adjusted")
	}
	batch.Delete(ColTransactions, id)
	if err := l.commit(batch); err != nil {
		return nil, err
	}
	return warnings, nil
}

// --- Categories ---

// AddCategory creates a user category at the end of its type's order.
func (l *Ledger) AddCategory(name string, typ TransactionType) (Category, error) {
	c := Category{ID: uuid.NewString(), Name: name, Type: typ}
	if err := c.Validate(); err != nil {
		return Category{}, err
	}
	maxOrder := -1
	for _, existing := range l.categories {
		if existing.Type != typ {
			continue
		}
		if existing.Name == name {
			return Category{}, invalidf("name", "category %q already exists", name)
		}
		if existing.Order > maxOrder {
			maxOrder = existing.Order
		}
	}
	c.Order = maxOrder + 1
	var batch Batch
	if err := batch.Put(ColCategories, c.ID, c); err != nil {
		return Category{}, err
	}
	if err := l.commit(batch); err != nil {
		return Category{}, err
	}
	return c, nil
}

// RenameCategory renames a user category and rewrites the category field of
// every transaction using the old name, in one batch. Renaming a default
// category is a guarded no-op.
func (l *Ledger) RenameCategory(id, newName string) error {
	c, ok := l.category(id)
	if !ok {
		return fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	if c.IsDefault || newName == c.Name {
		return nil
	}
	if newName == "" {
		return invalidf("name", "is required")
	}
	for _, other := range l.categories {
		if other.ID != id && other.Type == c.Type && other.Name == newName {
			return invalidf("name", "category %q already exists", newName)
		}
	}
	oldName := c.Name
	c.Name = newName

	var batch Batch
	if err := batch.Put(ColCategories, c.ID, c); err != nil {
		return err
	}
	for _, t := range l.transactions {
		if t.Category == oldName && t.Type == c.Type {
			t.Category = newName
			if err := batch.Put(ColTransactions, t.ID, t); err != nil {
				return err
			}
		}
	}
	return l.commit(batch)
}

// DeleteCategory removes a user category, reassigning its transactions to
// the per-type fallback and compacting the remaining order values, all in
// one batch. Deleting a default category is a guarded no-op; an absent id
// too.
func (l *Ledger) DeleteCategory(id string) error {
	c, ok := l.category(id)
	if !ok || c.IsDefault {
		return nil
	}
	var batch Batch
	for _, t := range l.transactions {
		if t.Category == c.Name && t.Type == c.Type {
			t.Category = Fallback
			if err := batch.Put(ColTransactions, t.ID, t); err != nil {
				return err
			}
		}
	}
	batch.Delete(ColCategories, id)

	remaining := slices.DeleteFunc(l.Categories(), func(x Category) bool { return x.ID == id })
	for _, changed := range renumber(remaining) {
		if err := batch.Put(ColCategories, changed.ID, changed); err != nil {
			return err
		}
	}
	return l.commit(batch)
}

// ReorderCategories applies a new display order for one type. ids must be a
// permutation of every category id of that type; positions become the new
// dense order values.
func (l *Ledger) ReorderCategories(typ TransactionType, ids []string) error {
	current := make(map[string]Category)
	for _, c := range l.categories {
		if c.Type == typ {
			current[c.ID] = c
		}
	}
	if len(ids) != len(current) {
		return invalidf("order", "got %d ids, want all %d categories of type %s", len(ids), len(current), typ)
	}
	var batch Batch
	for i, id := range ids {
		c, ok := current[id]
		if !ok {
			return invalidf("order", "unknown or duplicate category id %q", id)
		}
		delete(current, id)
		if c.Order != i {
			c.Order = i
			if err := batch.Put(ColCategories, c.ID, c); err != nil {
				return err
			}
		}
	}
	return l.commit(batch)
}

// --- Goals ---

// AddGoal creates a savings goal starting at zero. Marking it as the
// emergency fund clears the flag on every other goal in the same batch.
func (l *Ledger) AddGoal(name string, target Amount, isEmergencyFund bool) (Goal, error) {
	g := Goal{
		ID:              uuid.NewString(),
		Name:            name,
		TargetAmount:    target,
		CreatedAt:       l.now(),
		IsEmergencyFund: isEmergencyFund,
	}
	if err := g.Validate(); err != nil {
		return Goal{}, err
	}
	var batch Batch
	if isEmergencyFund {
		if err := l.clearEmergencyFlag(&batch, g.ID); err != nil {
			return Goal{}, err
		}
	}
	if err := batch.Put(ColGoals, g.ID, g); err != nil {
		return Goal{}, err
	}
	if err := l.commit(batch); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// UpdateGoal edits a goal's name, target and emergency flag. CurrentAmount
// is owned by the add-funds operation and the delete rollback: the stored
// value is preserved regardless of what the caller passes.
func (l *Ledger) UpdateGoal(g Goal) error {
	old, ok := l.Goal(g.ID)
	if !ok {
		return fmt.Errorf("goal %q: %w", g.ID, ErrNotFound)
	}
	g.CurrentAmount = old.CurrentAmount
	g.CreatedAt = old.CreatedAt
	if err := g.Validate(); err != nil {
		return err
	}
	var batch Batch
	if g.IsEmergencyFund && !old.IsEmergencyFund {
		if err := l.clearEmergencyFlag(&batch, g.ID); err != nil {
			return err
		}
	}
	if err := batch.Put(ColGoals, g.ID, g); err != nil {
		return err
	}
	return l.commit(batch)
}

func (l *Ledger) clearEmergencyFlag(batch *Batch, exceptID string) error {
	for _, other := range l.goals {
		if other.IsEmergencyFund && other.ID != exceptID {
			other.IsEmergencyFund = false
			if err := batch.Put(ColGoals, other.ID, other); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeleteGoal removes a goal. An absent id is a no-op. Funding transactions
// keep their (now dangling) goal reference; history is not rewritten.
func (l *Ledger) DeleteGoal(id string) error {
	if _, ok := l.Goal(id); !ok {
		return nil
	}
	var batch Batch
	batch.Delete(ColGoals, id)
	return l.commit(batch)
}

// AddFundsToGoal moves money into a goal: the goal's current amount grows
// and a linked expense transaction materializes in the same batch.
func (l *Ledger) AddFundsToGoal(goalID string, amount Amount) (Transaction, error) {
	g, ok := l.Goal(goalID)
	if !ok {
		return Transaction{}, fmt.Errorf("goal %q: %w", goalID, ErrNotFound)
	}
	if !amount.IsPositive() {
		return Transaction{}, invalidf("amount", "must be positive")
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	t := Transaction{
		ID:          uuid.NewString(),
		Type:        Expense,
		Amount:      amount,
		Category:    SavingsCategory,
		Description: fmt.Sprintf("Added funds to goal: %s", g.Name),
		Date:        l.now(),
		GoalID:      g.ID,
	}
	var batch Batch
	if err := batch.Put(ColGoals, g.ID, g); err != nil {
		return Transaction{}, err
	}
	if err := batch.Put(ColTransactions, t.ID, t); err != nil {
		return Transaction{}, err
	}
	if err := l.commit(batch); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// --- Budgets ---

// SaveBudgets persists the given budget rows in one batch. Rows for removed
// categories are left alone: saving never deletes.
func (l *Ledger) SaveBudgets(budgets []Budget) error {
	var batch Batch
	for _, b := range budgets {
		if err := b.Validate(); err != nil {
			return err
		}
		if err := batch.Put(ColBudgets, b.Category, b); err != nil {
			return err
		}
	}
	return l.commit(batch)
}

// --- Debts ---

// AddDebt records a new debt; the remaining amount starts at the total.
func (l *Ledger) AddDebt(name string, total, monthlyPayment Amount, nextPayment Date) (Debt, error) {
	d := Debt{
		ID:              uuid.NewString(),
		Name:            name,
		TotalAmount:     total,
		RemainingAmount: total,
		MonthlyPayment:  monthlyPayment,
		NextPaymentDate: nextPayment,
	}
	if err := d.Validate(); err != nil {
		return Debt{}, err
	}
	var batch Batch
	if err := batch.Put(ColDebts, d.ID, d); err != nil {
		return Debt{}, err
	}
	if err := l.commit(batch); err != nil {
		return Debt{}, err
	}
	return d, nil
}

// UpdateDebt edits a debt's descriptive fields. The total is fixed at
// creation and the remaining amount only moves through payments; both are
// preserved from the stored record.
func (l *Ledger) UpdateDebt(d Debt) error {
	old, ok := l.Debt(d.ID)
	if !ok {
		return fmt.Errorf("debt %q: %w", d.ID, ErrNotFound)
	}
	d.TotalAmount = old.TotalAmount
	d.RemainingAmount = old.RemainingAmount
	if err := d.Validate(); err != nil {
		return err
	}
	var batch Batch
	if err := batch.Put(ColDebts, d.ID, d); err != nil {
		return err
	}
	return l.commit(batch)
}

// DeleteDebt removes a debt. An absent id is a no-op.
func (l *Ledger) DeleteDebt(id string) error {
	if _, ok := l.Debt(id); !ok {
		return nil
	}
	var batch Batch
	batch.Delete(ColDebts, id)
	return l.commit(batch)
}

// --- Subscriptions ---

// AddSubscription records a new subscription.
func (l *Ledger) AddSubscription(s Subscription) (Subscription, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if err := s.Validate(); err != nil {
		return Subscription{}, err
	}
	var batch Batch
	if err := batch.Put(ColSubscriptions, s.ID, s); err != nil {
		return Subscription{}, err
	}
	if err := l.commit(batch); err != nil {
		return Subscription{}, err
	}
	return s, nil
}

// UpdateSubscription edits a subscription.
func (l *Ledger) UpdateSubscription(s Subscription) error {
	if _, ok := l.Subscription(s.ID); !ok {
		return fmt.Errorf("subscription %q: %w", s.ID, ErrNotFound)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	var batch Batch
	if err := batch.Put(ColSubscriptions, s.ID, s); err != nil {
		return err
	}
	return l.commit(batch)
}

// DeleteSubscription removes a subscription. An absent id is a no-op.
func (l *Ledger) DeleteSubscription(id string) error {
	if _, ok := l.Subscription(id); !ok {
		return nil
	}
	var batch Batch
	batch.Delete(ColSubscriptions, id)
	return l.commit(batch)
}

// --- Settings & wipe ---

// SaveSettings persists the singleton settings record.
func (l *Ledger) SaveSettings(s UserSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := l.store.Set(KeySettings, data); err != nil {
		return fmt.Errorf("could not save settings: %w", err)
	}
	l.settings = s
	return nil
}

// Wipe erases every collection and every stored key, including the auth
// secret. The ledger must be reopened afterwards to reseed defaults.
func (l *Ledger) Wipe() error {
	if err := l.store.Wipe(); err != nil {
		return fmt.Errorf("could not wipe data: %w", err)
	}
	*l = Ledger{store: l.store, clock: l.clock, settings: DefaultSettings()}
	return nil
}
