package hesabna

import "time"

// HealthFactor is one component of the financial health score.
type HealthFactor struct {
	Score int     // points awarded, out of 25
	Value float64 // underlying ratio or count the points were derived from
}

// HealthScore is the 0..100 financial health breakdown. Each of the four
// factors contributes at most 25 points.
type HealthScore struct {
	Total           int
	SavingsRate     HealthFactor // (income - expense) / income
	DebtLoad        HealthFactor // monthly debt payments / income
	EmergencyFund   HealthFactor // months of essential expenses covered
	IncomeDiversity HealthFactor // distinct income categories this month
}

// ScoreHealth computes the financial health score for the calendar month
// containing ref. monthlyEssentials is the estimated essential monthly spend
// used to translate the emergency fund into months of coverage; pass zero
// when no estimate is available and the factor degrades gracefully.
//
// The savings-rate and debt-load denominators use the larger of the declared
// monthly income from settings and the month's actual income, so a fresh or
// under-recorded ledger still scores meaningfully.
func (l *Ledger) ScoreHealth(ref time.Time, monthlyEssentials Amount) HealthScore {
	income, expense := l.MonthTotals(ref)
	effective := l.settings.MonthlyIncome.Max(income)

	var h HealthScore

	// savings rate, strict thresholds: exactly 20% is the 15-point band
	if effective.IsPositive() {
		h.SavingsRate.Value = effective.Sub(expense).Div(effective)
	}
	switch rate := h.SavingsRate.Value; {
	case rate > 0.20:
		h.SavingsRate.Score = 25
	case rate > 0.10:
		h.SavingsRate.Score = 15
	case rate > 0.05:
		h.SavingsRate.Score = 10
	case rate > 0:
		h.SavingsRate.Score = 5
	}

	var payments Amount
	for _, d := range l.debts {
		payments = payments.Add(d.MonthlyPayment)
	}
	switch {
	case !effective.IsPositive():
		h.DebtLoad.Value = 1.0
	case payments.IsZero():
		h.DebtLoad.Score = 25
	default:
		h.DebtLoad.Value = payments.Div(effective)
		switch ratio := h.DebtLoad.Value; {
		case ratio <= 0.15:
			h.DebtLoad.Score = 20
		case ratio <= 0.30:
			h.DebtLoad.Score = 10
		case ratio <= 0.40:
			h.DebtLoad.Score = 5
		}
	}

	var fund *Goal
	for i := range l.goals {
		if l.goals[i].IsEmergencyFund {
			fund = &l.goals[i]
			break
		}
	}
	switch {
	case fund == nil:
		// no emergency fund goal at all
	case monthlyEssentials.IsPositive():
		h.EmergencyFund.Value = fund.CurrentAmount.Div(monthlyEssentials)
		switch months := h.EmergencyFund.Value; {
		case months >= 3:
			h.EmergencyFund.Score = 25
		case months >= 1:
			h.EmergencyFund.Score = 15
		case months > 0:
			h.EmergencyFund.Score = 5
		}
	case fund.CurrentAmount.IsPositive():
		h.EmergencyFund.Score = 2 // fund exists, coverage unknown
	}

	sources := make(map[string]bool)
	for _, t := range l.transactions {
		if t.Type == Income && sameMonth(t.Date, ref) {
			sources[t.Category] = true
		}
	}
	h.IncomeDiversity.Value = float64(len(sources))
	switch {
	case len(sources) >= 3:
		h.IncomeDiversity.Score = 25
	case len(sources) == 2:
		h.IncomeDiversity.Score = 15
	case len(sources) == 1:
		h.IncomeDiversity.Score = 5
	}

	h.Total = h.SavingsRate.Score + h.DebtLoad.Score + h.EmergencyFund.Score + h.IncomeDiversity.Score
	return h
}
