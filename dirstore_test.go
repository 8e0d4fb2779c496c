package hesabna

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirStoreRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	l, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	tx, err := l.AddTransaction(expense(42.50, "Food & Groceries", 10))
	if err != nil {
		t.Fatal(err)
	}
	g, err := l.AddGoal("Vacation", A(3000), false)
	if err != nil {
		t.Fatal(err)
	}
	s := l.Settings()
	s.Name = "Sara"
	if err := l.SaveSettings(s); err != nil {
		t.Fatal(err)
	}

	// a second open over the same folder sees everything
	store2, err := OpenDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	l2, err := Open(store2)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := l2.Transaction(tx.ID)
	if !ok || !got.Amount.Equal(A(42.50)) {
		t.Errorf("transaction = %+v, ok=%v", got, ok)
	}
	if _, ok := l2.Goal(g.ID); !ok {
		t.Error("goal lost across reopen")
	}
	if l2.Settings().Name != "Sara" {
		t.Errorf("settings name = %q", l2.Settings().Name)
	}
}

func TestDirStoreFilesAreJSONL(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	l, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(expense(10, "Other", 1)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "transactions.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("file has %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], `"key"`) || !strings.Contains(lines[0], `"value"`) {
		t.Errorf("line shape: %s", lines[0])
	}
}

func TestDirStoreNoLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	l, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(expense(10, "Other", 1)); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".jsonl") && e.Name() != "state.json" {
			t.Errorf("unexpected file %q in data dir", e.Name())
		}
	}
}

func TestDirStoreBatchDeletes(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	l, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	tx, err := l.AddTransaction(expense(10, "Other", 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.DeleteTransaction(tx.ID); err != nil {
		t.Fatal(err)
	}

	store2, _ := OpenDirStore(dir)
	records, err := store2.List(ColTransactions)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("deleted record persisted: %v", records)
	}
}

func TestDirStoreWipe(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	l, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(expense(10, "Other", 1)); err != nil {
		t.Fatal(err)
	}
	if err := l.Wipe(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".jsonl") || e.Name() == "state.json" {
			t.Errorf("file %q survived the wipe", e.Name())
		}
	}
}
