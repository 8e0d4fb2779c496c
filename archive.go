package hesabna

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// ArchiveResult reports what a compaction pass did.
type ArchiveResult struct {
	Archived  int           // original transactions removed
	Summaries []Transaction // summary transactions written, if any
}

// Archive compacts history: every non-recurring transaction dated within
// [start, end] (whole days, inclusive) collapses into one summary
// transaction per (type, category) pair, dated at the end of the range. The
// summaries and the deletions commit as one batch, so income and expense
// totals are conserved across the pass. Recurring templates are never
// archived.
func (l *Ledger) Archive(start, end Date) (ArchiveResult, error) {
	if end.Before(start) {
		return ArchiveResult{}, invalidf("range", "end %s is before start %s", end, start)
	}
	from, to := start.StartOfDay(), end.EndOfDay()

	type bucket struct {
		typ      TransactionType
		category string
	}
	totals := make(map[bucket]Amount)
	var order []bucket
	var victims []string
	for _, t := range l.transactions {
		if t.IsRecurring || t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		b := bucket{t.Type, t.Category}
		if _, seen := totals[b]; !seen {
			order = append(order, b)
		}
		totals[b] = totals[b].Add(t.Amount)
		victims = append(victims, t.ID)
	}
	if len(victims) == 0 {
		return ArchiveResult{}, nil
	}
	slices.SortFunc(order, func(a, b bucket) int {
		if a.typ != b.typ {
			if a.typ == Income {
				return -1
			}
			return 1
		}
		return slices.Compare([]byte(a.category), []byte(b.category))
	})

	var batch Batch
	result := ArchiveResult{Archived: len(victims)}
	for _, b := range order {
		summary := Transaction{
			ID:          uuid.NewString(),
			Type:        b.typ,
			Amount:      totals[b],
			Category:    b.category,
			Description: fmt.Sprintf("Archived %s summary %s..%s", b.typ, start, end),
			Date:        end.EndOfDay(),
		}
		if err := batch.Put(ColTransactions, summary.ID, summary); err != nil {
			return ArchiveResult{}, err
		}
		result.Summaries = append(result.Summaries, summary)
	}
	for _, id := range victims {
		batch.Delete(ColTransactions, id)
	}
	if err := l.commit(batch); err != nil {
		return ArchiveResult{}, err
	}
	return result, nil
}
