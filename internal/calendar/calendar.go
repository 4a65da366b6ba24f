package calendar

import "time"

// Set holds the public holidays of one year, keyed by ISO date (YYYY-MM-DD).
// The value is the holiday name.
type Set map[string]string

// Contains checks if the given date is a holiday in the set
func (s Set) Contains(date time.Time) bool {
	_, ok := s[date.Format("2006-01-02")]
	return ok
}

// Name returns the holiday name for the given date, or "" if it is none
func (s Set) Name(date time.Time) string {
	return s[date.Format("2006-01-02")]
}

// Add inserts a holiday into the set
func (s Set) Add(date time.Time, name string) {
	s[date.Format("2006-01-02")] = name
}

// Source supplies the set of public holidays observed in a given year.
// Implementations are pure lookups; the jurisdiction is fixed at
// construction time.
type Source interface {
	// Holidays returns all public holidays of the given year
	Holidays(year int) (Set, error)
}
