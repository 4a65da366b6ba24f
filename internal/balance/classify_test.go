package balance

import (
	"testing"
	"time"

	"github.com/username/kimbal/internal/calendar"
	"github.com/username/kimbal/pkg/dateutil"
)

func saxony2022(t *testing.T) calendar.Set {
	t.Helper()
	src, err := calendar.NewGermanHolidays("SN")
	if err != nil {
		t.Fatal(err)
	}
	set, err := src.Holidays(2022)
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func TestCountDays(t *testing.T) {
	holidays := saxony2022(t)

	tests := []struct {
		name     string
		from, to time.Time
		leave    int
		want     DayCount
	}{
		{
			name: "April 2022 in Saxony",
			from: time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2022, 4, 30, 0, 0, 0, 0, time.UTC),
			// Karfreitag (Apr 15) and Ostermontag (Apr 18) fall on
			// weekdays; 9 weekend days
			want: DayCount{WorkDays: 19, WeekendDays: 9, Holidays: 2},
		},
		{
			name: "Easter week",
			from: time.Date(2022, 4, 18, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2022, 4, 24, 0, 0, 0, 0, time.UTC),
			want: DayCount{WorkDays: 4, WeekendDays: 2, Holidays: 1},
		},
		{
			name: "single work day",
			from: time.Date(2022, 4, 20, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2022, 4, 20, 0, 0, 0, 0, time.UTC),
			want: DayCount{WorkDays: 1},
		},
		{
			name:  "leave subtracted as signed adjustment",
			from:  time.Date(2022, 4, 18, 0, 0, 0, 0, time.UTC),
			to:    time.Date(2022, 4, 24, 0, 0, 0, 0, time.UTC),
			leave: 10,
			want:  DayCount{WorkDays: -6, WeekendDays: 2, Holidays: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountDays(tt.from, tt.to, holidays, tt.leave, dateutil.Period{})
			if got != tt.want {
				t.Errorf("CountDays() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCountDays_Invariant(t *testing.T) {
	// Pre-leave, the three classes partition the calendar days
	holidays := saxony2022(t)

	periods := []struct {
		from, to time.Time
	}{
		{time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)},
		{time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2022, 11, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2022, 10, 31, 0, 0, 0, 0, time.UTC), time.Date(2022, 10, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, p := range periods {
		period, err := dateutil.NewPeriod(p.from, p.to)
		if err != nil {
			t.Fatal(err)
		}
		got := CountDays(p.from, p.to, holidays, 0, dateutil.Period{})
		if sum := got.WorkDays + got.WeekendDays + got.Holidays; sum != period.Days() {
			t.Errorf("period %s: %d + %d + %d = %d, want %d calendar days",
				period, got.WorkDays, got.WeekendDays, got.Holidays, sum, period.Days())
		}
	}
}

func TestCountDays_Restrict(t *testing.T) {
	holidays := saxony2022(t)

	restrict, err := dateutil.NewPeriod(
		time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 11, 30, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     DayCount
	}{
		{
			name: "range clipped at period end",
			from: time.Date(2022, 11, 28, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2022, 12, 9, 0, 0, 0, 0, time.UTC),
			// Only Mon Nov 28 - Wed Nov 30 remain
			want: DayCount{WorkDays: 3},
		},
		{
			name: "range fully outside",
			from: time.Date(2022, 12, 19, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2022, 12, 23, 0, 0, 0, 0, time.UTC),
			want: DayCount{},
		},
		{
			name: "range fully inside unaffected",
			from: time.Date(2022, 5, 2, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2022, 5, 6, 0, 0, 0, 0, time.UTC),
			want: DayCount{WorkDays: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountDays(tt.from, tt.to, holidays, 0, restrict)
			if got != tt.want {
				t.Errorf("CountDays() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
