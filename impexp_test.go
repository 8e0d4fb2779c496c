package hesabna

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"
)

func TestExportCSV(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.AddTransaction(Transaction{
		Type: Expense, Amount: A(42.50), Category: "Food & Groceries",
		Description: `weekly "big" shopping, with extras`,
		Date:        time.Date(2026, 8, 10, 10, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatal(err)
	}
	addIncome(t, l, 5000, "Salary", 1)

	var buf bytes.Buffer
	if err := l.ExportCSV(&buf); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[0][5] != "amount" {
		t.Errorf("header = %v", rows[0])
	}
	// newest first
	if rows[1][3] != "Food & Groceries" {
		t.Errorf("first data row category = %q", rows[1][3])
	}
	if rows[1][4] != `weekly "big" shopping, with extras` {
		t.Errorf("quoting mangled the description: %q", rows[1][4])
	}
	if rows[1][5] != "42.5" {
		t.Errorf("amount = %q", rows[1][5])
	}
	if rows[2][2] != "income" {
		t.Errorf("second data row type = %q", rows[2][2])
	}
}

func TestExportCSVEmptyLedger(t *testing.T) {
	l, _ := newTestLedger(t)
	var buf bytes.Buffer
	if err := l.ExportCSV(&buf); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("empty ledger export = %d rows, want header only", len(rows))
	}
}
