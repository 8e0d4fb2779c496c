package hesabna

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// The recurrence engine is strictly confirmation driven: nothing here runs on
// a timer. A template or schedule advances only when the user confirms the
// payment, and each confirmation is one settlement transaction plus one
// template advance committed atomically.

// DueRecurring returns the recurring templates whose date has reached the end
// of the current day, soonest first. A future-dated template is not due.
func (l *Ledger) DueRecurring() []Transaction {
	cutoff := endOfToday(l.now())
	var due []Transaction
	for _, t := range l.transactions {
		if t.IsRecurring && !t.Date.After(cutoff) {
			due = append(due, t)
		}
	}
	slices.SortStableFunc(due, func(a, b Transaction) int { return a.Date.Compare(b.Date) })
	return due
}

// DueSubscriptions returns the subscriptions whose next payment date has
// reached the end of the current day, soonest first.
func (l *Ledger) DueSubscriptions() []Subscription {
	today := DateOf(l.now())
	var due []Subscription
	for _, s := range l.subscriptions {
		if !s.NextPaymentDate.After(today) {
			due = append(due, s)
		}
	}
	return due // snapshot is already sorted by next payment date
}

// ConfirmRecurring settles one occurrence of a recurring template: a
// non-recurring settlement transaction dated now is recorded and the
// template's date advances by its recurrence unit, in one batch. The
// template itself survives indefinitely.
func (l *Ledger) ConfirmRecurring(id string) (Transaction, error) {
	tpl, ok := l.Transaction(id)
	if !ok {
		return Transaction{}, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	if !tpl.IsRecurring {
		return Transaction{}, invalidf("id", "transaction %q is not recurring", id)
	}

	settlement := tpl
	settlement.ID = uuid.NewString()
	settlement.Date = l.now()
	settlement.IsRecurring = false
	settlement.Recurrence = ""

	switch tpl.Recurrence {
	case Daily:
		tpl.Date = tpl.Date.AddDate(0, 0, 1)
	case Weekly:
		tpl.Date = tpl.Date.AddDate(0, 0, 7)
	case Yearly:
		tpl.Date = addMonthsTime(tpl.Date, 12)
	default: // monthly is the default unit
		tpl.Date = addMonthsTime(tpl.Date, 1)
	}

	var batch Batch
	if err := batch.Put(ColTransactions, settlement.ID, settlement); err != nil {
		return Transaction{}, err
	}
	if err := batch.Put(ColTransactions, tpl.ID, tpl); err != nil {
		return Transaction{}, err
	}
	if err := l.commit(batch); err != nil {
		return Transaction{}, err
	}
	return settlement, nil
}

// RecordSubscriptionPayment settles one subscription cycle: an expense
// transaction linked to the subscription is recorded and the next payment
// date advances by the subscription frequency, in one batch.
func (l *Ledger) RecordSubscriptionPayment(id string) (Transaction, error) {
	s, ok := l.Subscription(id)
	if !ok {
		return Transaction{}, fmt.Errorf("subscription %q: %w", id, ErrNotFound)
	}
	t := Transaction{
		ID:             uuid.NewString(),
		Type:           Expense,
		Amount:         s.Amount,
		Category:       s.Category,
		Description:    fmt.Sprintf("Subscription payment: %s", s.Name),
		Date:           l.now(),
		SubscriptionID: s.ID,
	}
	if s.Frequency == YearlyFrequency {
		s.NextPaymentDate = s.NextPaymentDate.AddYears(1)
	} else {
		s.NextPaymentDate = s.NextPaymentDate.AddMonths(1)
	}
	var batch Batch
	if err := batch.Put(ColTransactions, t.ID, t); err != nil {
		return Transaction{}, err
	}
	if err := batch.Put(ColSubscriptions, s.ID, s); err != nil {
		return Transaction{}, err
	}
	if err := l.commit(batch); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// RecordDebtPayment settles one monthly debt installment: a linked expense
// transaction is recorded, the remaining balance drops by the paid amount
// and the next payment date advances one month, in one batch. The remaining
// balance is allowed to go negative (overpayment is visible, not hidden).
func (l *Ledger) RecordDebtPayment(id string, amount Amount) (Transaction, error) {
	d, ok := l.Debt(id)
	if !ok {
		return Transaction{}, fmt.Errorf("debt %q: %w", id, ErrNotFound)
	}
	if amount.IsNegative() || amount.IsZero() {
		return Transaction{}, invalidf("amount", "must be positive")
	}
	t := Transaction{
		ID:          uuid.NewString(),
		Type:        Expense,
		Amount:      amount,
		Category:    DebtsCategory,
		Description: fmt.Sprintf("Debt payment: %s", d.Name),
		Date:        l.now(),
		DebtID:      d.ID,
	}
	d.RemainingAmount = d.RemainingAmount.Sub(amount)
	d.NextPaymentDate = d.NextPaymentDate.AddMonths(1)

	var batch Batch
	if err := batch.Put(ColTransactions, t.ID, t); err != nil {
		return Transaction{}, err
	}
	if err := batch.Put(ColDebts, d.ID, d); err != nil {
		return Transaction{}, err
	}
	if err := l.commit(batch); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// DebtReminder flags a debt payment as overdue or upcoming.
type DebtReminder struct {
	Debt    Debt
	Overdue bool // payment date has passed; false means due within the lookahead window
}

// reminderLookaheadDays is the upcoming-payment window for debt reminders.
const reminderLookaheadDays = 30

// DebtReminders returns every debt whose next payment is overdue or falls
// within the 30-day lookahead, overdue first, then by payment date.
func (l *Ledger) DebtReminders() []DebtReminder {
	today := DateOf(l.now())
	horizon := today.Add(reminderLookaheadDays)
	var out []DebtReminder
	for _, d := range l.debts {
		switch {
		case !d.NextPaymentDate.After(today):
			out = append(out, DebtReminder{Debt: d, Overdue: true})
		case !d.NextPaymentDate.After(horizon):
			out = append(out, DebtReminder{Debt: d})
		}
	}
	slices.SortStableFunc(out, func(a, b DebtReminder) int {
		if a.Overdue != b.Overdue {
			if a.Overdue {
				return -1
			}
			return 1
		}
		if a.Debt.NextPaymentDate.Before(b.Debt.NextPaymentDate) {
			return -1
		}
		if a.Debt.NextPaymentDate.After(b.Debt.NextPaymentDate) {
			return 1
		}
		return 0
	})
	return out
}
