package balance

import (
	"time"

	"github.com/username/kimbal/internal/calendar"
	"github.com/username/kimbal/pkg/dateutil"
)

// DayCount is the day classification of a period. WorkDays already carries
// the leave adjustment and may be negative when leave exceeds the work days
// available in the period.
type DayCount struct {
	WorkDays    int
	WeekendDays int
	Holidays    int
}

// CountDays classifies every calendar day of [from, to] inclusive. Holidays
// take precedence over weekends; everything else is a work day. leave is
// subtracted from the work days as a final signed adjustment.
//
// A non-zero restrict period clips the range: only days inside both ranges
// are counted. This is used for leave ranges extending beyond the log period.
func CountDays(from, to time.Time, holidays calendar.Set, leave int, restrict dateutil.Period) DayCount {
	count := DayCount{WorkDays: -leave}

	from, to = dateutil.StartOfDay(from), dateutil.StartOfDay(to)
	if !restrict.IsZero() {
		if from.Before(restrict.Start()) {
			from = restrict.Start()
		}
		if to.After(restrict.End()) {
			to = restrict.End()
		}
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		switch {
		case holidays.Contains(day):
			count.Holidays++
		case dateutil.IsWeekend(day):
			count.WeekendDays++
		default:
			count.WorkDays++
		}
	}

	return count
}
