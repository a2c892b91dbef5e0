package dateutil

import (
	"fmt"
	"time"
)

// Date is a whole calendar day without time-of-day or timezone.
// Equality and ordering are by the (year, month, day) triple, so Date
// values are safe to use as map keys and comparison never depends on
// the zone a timestamp was produced in.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate creates a normalized Date. Out-of-range components roll over
// the same way time.Date does (month 13 becomes January of next year).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf extracts the calendar day from a timestamp
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns today's date
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a date string in various formats
func ParseDate(dateStr string) (Date, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return DateOf(t), nil
		}
	}

	return Date{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// Time returns the date as UTC midnight
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n calendar days away, handling month and
// year rollover. n may be negative.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before returns true if d is earlier than other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After returns true if d is later than other
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// IsZero returns true for the zero value
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" JSON string
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" JSON string
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date JSON: %s", s)
	}

	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// InclusiveDaySpan returns the number of whole days in [start, end],
// counting both endpoints. The order of the arguments does not matter.
func InclusiveDaySpan(start, end Date) int {
	diff := end.Time().Sub(start.Time()).Hours() / 24
	if diff < 0 {
		diff = -diff
	}
	return int(diff) + 1
}

// IsWorkday returns true if the date's weekday is in the workday set
func IsWorkday(date Date, workdays map[time.Weekday]bool) bool {
	return workdays[date.Weekday()]
}

// IsRemoteDay returns true if the date's weekday is in the remote set
func IsRemoteDay(date Date, remote map[time.Weekday]bool) bool {
	return remote[date.Weekday()]
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date Date) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// EnumerateWorkdays returns every day in [start, end] whose weekday is
// in the workday set, in ascending order.
func EnumerateWorkdays(start, end Date, workdays map[time.Weekday]bool) []Date {
	days := []Date{}
	for d := start; !d.After(end); d = d.AddDays(1) {
		if workdays[d.Weekday()] {
			days = append(days, d)
		}
	}
	return days
}

// WeekdaySet builds a weekday set from numeric indices (0=Sunday .. 6=Saturday)
func WeekdaySet(indices []int) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool)
	for _, i := range indices {
		if i >= 0 && i <= 6 {
			set[time.Weekday(i)] = true
		}
	}
	return set
}
