package hesabna

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// DatetimeFormat is the format used to persist transaction timestamps.
const DatetimeFormat = time.RFC3339

// Date represents a date with day-level granularity. It is used wherever the
// ledger schedules by calendar day: debt and subscription payment dates and
// archival range bounds.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// DateOf returns the Date of the given instant in its location.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return NewDate(d.y, d.m, d.d+days) }

// AddMonths returns the date n calendar months later, clamping the day to the
// last valid day of the target month: 2024-01-31 advanced by one month is
// 2024-02-29, not March 2nd. This is the single day-clamping policy used by
// the whole recurrence engine.
func (d Date) AddMonths(n int) Date {
	y, m, day := addMonthsClamped(d.y, d.m, d.d, n)
	return Date{y, m, day}
}

// AddYears returns the date n years later, clamping Feb 29 to Feb 28 on
// non-leap years.
func (d Date) AddYears(n int) Date { return d.AddMonths(12 * n) }

// StartOfDay returns the first instant of the day in the local time zone.
func (d Date) StartOfDay() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.Local)
}

// EndOfDay returns the last instant of the day in the local time zone.
func (d Date) EndOfDay() time.Time {
	return time.Date(d.y, d.m, d.d, 23, 59, 59, int(time.Second-time.Nanosecond), time.Local)
}

// ParseDate parses a Date from a string. It is lenient and accepts formats
// like "2025-7-1", and also accepts a full RFC3339 timestamp.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		on, err = time.Parse(DatetimeFormat, str)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// daysIn returns the number of days of a month.
func daysIn(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// addMonthsClamped moves (year, month, day) forward by n calendar months,
// clamping the day instead of letting it roll over into the next month.
func addMonthsClamped(year int, month time.Month, day, n int) (int, time.Month, int) {
	total := year*12 + int(month) - 1 + n
	y, m := total/12, time.Month(total%12+1)
	if last := daysIn(y, m); day > last {
		day = last
	}
	return y, m, day
}

// addMonthsTime is addMonthsClamped on a full timestamp, preserving the
// clock time and location.
func addMonthsTime(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	y, m, d = addMonthsClamped(y, m, d, n)
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// endOfToday returns the last instant of the current day, the reference
// point of all "due" classifications.
func endOfToday(now time.Time) time.Time {
	return DateOf(now).EndOfDay()
}

// sameMonth reports whether two instants fall in the same calendar year and
// month. Budget aggregation and health scoring are month-window based, not
// rolling 30 days.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
