package balance

import (
	"fmt"
	"math"
	"time"

	"github.com/username/kimbal/internal/calendar"
	"github.com/username/kimbal/internal/kimai"
	"github.com/username/kimbal/pkg/dateutil"
	"go.uber.org/zap"
)

// DefaultHoursPerDay is the nominal length of one work day
const DefaultHoursPerDay = 8.0

// Engine computes work-time balances from a Kimai log against a holiday
// source. One Compute call produces one immutable Balance snapshot.
type Engine struct {
	holidays    calendar.Source
	hoursPerDay float64
	logger      *zap.Logger
}

// NewEngine creates a balance engine. hoursPerDay falls back to 8 when
// zero or negative.
func NewEngine(holidays calendar.Source, hoursPerDay float64, logger *zap.Logger) *Engine {
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultHoursPerDay
	}
	return &Engine{
		holidays:    holidays,
		hoursPerDay: hoursPerDay,
		logger:      logger,
	}
}

// Compute derives the balance of the given log: leave days are resolved
// against the log period, the period is classified into work, weekend, and
// holiday days, and the worked hours are compared against the demand.
func (e *Engine) Compute(log *kimai.Log, leave LeaveSource, dir string) (*Balance, error) {
	holidaySet, err := e.holidays.Holidays(log.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays for %d: %w", log.Year(), err)
	}

	leaveDays, leaveFile, err := leave.Resolve(dir, holidaySet, log.Period(), e.logger)
	if err != nil {
		return nil, err
	}

	period := log.Period()
	days := CountDays(period.Start(), period.End(), holidaySet, leaveDays, dateutil.Period{})

	sessions := log.Sessions()
	var workedHours float64
	var workedTime time.Duration
	for _, s := range sessions {
		workedHours += s.Hours
		workedTime += s.Duration
	}

	demandedHours := e.hoursPerDay * float64(days.WorkDays)
	demandedTime := time.Duration(demandedHours * float64(time.Hour))

	// The exported hours column and the timestamp-derived durations are
	// independent observations; they are reported separately and never
	// reconciled.
	if diff := math.Abs(workedHours - workedTime.Hours()); diff > 0.01 {
		e.logger.Debug("Exported hours diverge from timestamp-derived duration",
			zap.Float64("hours", workedHours),
			zap.Duration("duration", workedTime),
			zap.Float64("difference_hours", diff))
	}

	b := &Balance{
		period:        period,
		year:          log.Year(),
		days:          days,
		leaveDays:     leaveDays,
		demandedHours: demandedHours,
		workedHours:   workedHours,
		balanceHours:  workedHours - demandedHours,
		demandedTime:  demandedTime,
		workedTime:    workedTime,
		balanceTime:   workedTime - demandedTime,
		logFile:       log.File(),
		leaveFile:     leaveFile,
	}

	e.logger.Info("Balance computed",
		zap.String("period", period.String()),
		zap.Int("work_days", days.WorkDays),
		zap.Float64("demanded_hours", demandedHours),
		zap.Float64("worked_hours", workedHours),
		zap.Float64("balance_hours", b.balanceHours))

	return b, nil
}

// Balance is the final result snapshot for one log/leave/year combination.
// It is computed once and exposes read-only accessors; no field can be
// changed after construction.
type Balance struct {
	period    dateutil.Period
	year      int
	days      DayCount
	leaveDays int

	demandedHours float64
	workedHours   float64
	balanceHours  float64

	demandedTime time.Duration
	workedTime   time.Duration
	balanceTime  time.Duration

	logFile   string
	leaveFile string
}

// Period returns the date range the balance covers
func (b *Balance) Period() dateutil.Period { return b.period }

// Year returns the year the log was interpreted against
func (b *Balance) Year() int { return b.year }

// WorkDays returns the leave-adjusted work-day count
func (b *Balance) WorkDays() int { return b.days.WorkDays }

// WeekendDays returns the weekend-day count
func (b *Balance) WeekendDays() int { return b.days.WeekendDays }

// Holidays returns the holiday count
func (b *Balance) Holidays() int { return b.days.Holidays }

// LeaveDays returns the resolved leave-day count
func (b *Balance) LeaveDays() int { return b.leaveDays }

// DemandedHours returns the owed hours as float
func (b *Balance) DemandedHours() float64 { return b.demandedHours }

// WorkedHours returns the sum of the exported hours column
func (b *Balance) WorkedHours() float64 { return b.workedHours }

// BalanceHours returns worked minus demanded hours; positive is surplus
func (b *Balance) BalanceHours() float64 { return b.balanceHours }

// DemandedTime returns the owed hours as duration
func (b *Balance) DemandedTime() time.Duration { return b.demandedTime }

// WorkedTime returns the sum of the timestamp-derived session durations
func (b *Balance) WorkedTime() time.Duration { return b.workedTime }

// BalanceTime returns the duration-typed balance
func (b *Balance) BalanceTime() time.Duration { return b.balanceTime }

// LogFile returns the Kimai export path
func (b *Balance) LogFile() string { return b.logFile }

// LeaveFile returns the leave file path, or "" for an explicit count
func (b *Balance) LeaveFile() string { return b.leaveFile }

// FormatWorkTime renders a signed duration in work-day units: the absolute
// duration's calendar days fold into 8-hour work days at three per day, the
// seconds within the last partial day contribute divmod(seconds, 8*3600)
// further work days, and the remainder renders as H:MM:SS.
//
// The 3x fold (24h = three 8h work days) is the established display
// convention for this report and is kept as is.
func FormatWorkTime(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}

	totalSeconds := int64(d / time.Second)
	calendarDays := totalSeconds / 86400
	extraDays, seconds := totalSeconds%86400/(8*3600), totalSeconds%86400%(8*3600)
	workDays := 3*calendarDays + extraDays

	clock := fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
	if workDays == 0 {
		return sign + clock
	}
	unit := "days"
	if workDays == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s%d %s, %s", sign, workDays, unit, clock)
}
