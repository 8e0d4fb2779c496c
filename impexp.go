package hesabna

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the canonical transaction export header.
var csvHeader = []string{"id", "date", "type", "category", "description", "amount", "isRecurring", "recurrence"}

// ExportCSV writes every transaction, newest first, as RFC 4180 CSV with a
// header row. Fields containing commas or quotes are escaped by the encoder;
// invoice attachments and parent links are not exported.
func (l *Ledger) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	for _, t := range l.transactions {
		row := []string{
			t.ID,
			t.Date.Format(DatetimeFormat),
			string(t.Type),
			t.Category,
			t.Description,
			t.Amount.Decimal().String(),
			strconv.FormatBool(t.IsRecurring),
			string(t.Recurrence),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	return nil
}
