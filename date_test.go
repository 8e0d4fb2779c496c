package hesabna

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
		err  bool
	}{
		{in: "2025-07-01", want: NewDate(2025, 7, 1)},
		{in: "2025-7-1", want: NewDate(2025, 7, 1)},
		{in: " 2025-07-01 ", want: NewDate(2025, 7, 1)},
		{in: "2025-07-01T10:30:00Z", want: NewDate(2025, 7, 1)},
		{in: "01/07/2025", err: true},
		{in: "", err: true},
	}
	for _, tc := range tests {
		got, err := ParseDate(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("ParseDate(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		from Date
		n    int
		want Date
	}{
		{NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)}, // leap year
		{NewDate(2023, 1, 31), 1, NewDate(2023, 2, 28)},
		{NewDate(2024, 1, 31), 2, NewDate(2024, 3, 31)},
		{NewDate(2024, 1, 31), 3, NewDate(2024, 4, 30)},
		{NewDate(2024, 11, 30), 3, NewDate(2025, 2, 28)}, // across year end
		{NewDate(2024, 2, 29), 12, NewDate(2025, 2, 28)},
		{NewDate(2024, 6, 15), 1, NewDate(2024, 7, 15)},
	}
	for _, tc := range tests {
		if got := tc.from.AddMonths(tc.n); got != tc.want {
			t.Errorf("%v.AddMonths(%d) = %v, want %v", tc.from, tc.n, got, tc.want)
		}
	}
}

func TestAddMonthsTimePreservesClock(t *testing.T) {
	in := time.Date(2024, 1, 31, 9, 30, 0, 0, time.Local)
	got := addMonthsTime(in, 1)
	want := time.Date(2024, 2, 29, 9, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("addMonthsTime = %v, want %v", got, want)
	}
}

func TestAddYearsClampsLeapDay(t *testing.T) {
	if got, want := NewDate(2024, 2, 29).AddYears(1), NewDate(2025, 2, 28); got != want {
		t.Errorf("AddYears = %v, want %v", got, want)
	}
}

func TestEndOfDayBounds(t *testing.T) {
	d := NewDate(2026, 8, 31)
	if !d.EndOfDay().After(d.StartOfDay()) {
		t.Fatal("end of day must be after start of day")
	}
	next := d.Add(1)
	if !d.EndOfDay().Before(next.StartOfDay()) {
		t.Errorf("end of %v must precede start of %v", d, next)
	}
}

func TestDateJSONRoundtrip(t *testing.T) {
	d := NewDate(2026, 8, 5)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2026-08-05"` {
		t.Errorf("MarshalJSON = %s", b)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("roundtrip = %v, want %v", back, d)
	}
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	b := time.Date(2026, 8, 31, 23, 0, 0, 0, time.Local)
	c := time.Date(2025, 8, 15, 0, 0, 0, 0, time.Local)
	if !sameMonth(a, b) {
		t.Error("same month not detected")
	}
	if sameMonth(a, c) {
		t.Error("same month across years")
	}
}
