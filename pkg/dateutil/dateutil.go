package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseDayFirst parses a day-first date string such as "24.12.2022"
func ParseDayFirst(dateStr string) (time.Time, error) {
	formats := []string{
		"02.01.2006",
		"2.1.2006",
		"2006-01-02",
	}

	dateStr = strings.TrimSpace(dateStr)
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// Period is an inclusive date range [start, end] within one calendar year.
// It is constructed once and carries no setters; the bounds cannot change
// after creation.
type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod creates a Period from two dates (time-of-day is discarded).
// It fails when start is after end.
func NewPeriod(start, end time.Time) (Period, error) {
	start, end = StartOfDay(start), StartOfDay(end)
	if start.After(end) {
		return Period{}, fmt.Errorf("invalid period: start %s after end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return Period{start: start, end: end}, nil
}

// Start returns the first day of the period
func (p Period) Start() time.Time { return p.start }

// End returns the last day of the period
func (p Period) End() time.Time { return p.end }

// IsZero reports whether the period is the zero value
func (p Period) IsZero() bool {
	return p.start.IsZero() && p.end.IsZero()
}

// Contains reports whether the given date falls within the period (inclusive)
func (p Period) Contains(date time.Time) bool {
	d := StartOfDay(date)
	return !d.Before(p.start) && !d.After(p.end)
}

// Days returns the number of calendar days in the period (both ends counted)
func (p Period) Days() int {
	if p.IsZero() {
		return 0
	}
	return int(p.end.Sub(p.start).Hours()/24) + 1
}

// Intersect returns the overlap of two periods. The second return value is
// false when the periods do not overlap.
func (p Period) Intersect(other Period) (Period, bool) {
	start, end := p.start, p.end
	if other.start.After(start) {
		start = other.start
	}
	if other.end.Before(end) {
		end = other.end
	}
	if start.After(end) {
		return Period{}, false
	}
	return Period{start: start, end: end}, true
}

// String returns the period as "YYYY-MM-DD - YYYY-MM-DD"
func (p Period) String() string {
	return p.start.Format("2006-01-02") + " - " + p.end.Format("2006-01-02")
}
