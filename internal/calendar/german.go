package calendar

import (
	"fmt"
	"time"
)

// GermanHolidays implements Source with computed German public holidays.
// It covers the nationwide holidays plus the additions of a single federal
// state selected by its two-letter code (default "SN", Saxony).
type GermanHolidays struct {
	region string
}

// NewGermanHolidays creates a computed holiday source for the given federal
// state code. An empty region defaults to "SN".
func NewGermanHolidays(region string) (*GermanHolidays, error) {
	if region == "" {
		region = "SN"
	}
	if _, ok := stateHolidays[region]; !ok {
		return nil, fmt.Errorf("unknown German federal state: %s", region)
	}
	return &GermanHolidays{region: region}, nil
}

// Region returns the configured federal state code
func (g *GermanHolidays) Region() string { return g.region }

// Holidays returns all public holidays of the given year
func (g *GermanHolidays) Holidays(year int) (Set, error) {
	additions, ok := stateHolidays[g.region]
	if !ok {
		return nil, fmt.Errorf("unknown German federal state: %s", g.region)
	}

	set := make(Set)
	easter := easterSunday(year)

	for _, h := range nationalHolidays {
		set.Add(h.date(year, easter), h.name)
	}
	for _, h := range additions {
		set.Add(h.date(year, easter), h.name)
	}

	return set, nil
}

// holiday is either a fixed date (month/day) or an offset in days relative
// to Easter Sunday.
type holiday struct {
	name         string
	month        time.Month
	day          int
	easterOffset int
	movable      bool
	special      func(year int) time.Time
}

func (h holiday) date(year int, easter time.Time) time.Time {
	if h.special != nil {
		return h.special(year)
	}
	if h.movable {
		return easter.AddDate(0, 0, h.easterOffset)
	}
	return time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC)
}

func fixed(name string, month time.Month, day int) holiday {
	return holiday{name: name, month: month, day: day}
}

func easterBased(name string, offset int) holiday {
	return holiday{name: name, easterOffset: offset, movable: true}
}

// nationalHolidays are observed in every federal state.
var nationalHolidays = []holiday{
	fixed("Neujahr", time.January, 1),
	easterBased("Karfreitag", -2),
	easterBased("Ostermontag", 1),
	fixed("Erster Mai", time.May, 1),
	easterBased("Christi Himmelfahrt", 39),
	easterBased("Pfingstmontag", 50),
	fixed("Tag der Deutschen Einheit", time.October, 3),
	fixed("Erster Weihnachtstag", time.December, 25),
	fixed("Zweiter Weihnachtstag", time.December, 26),
}

// stateHolidays maps a federal state code to its additional holidays.
var stateHolidays = map[string][]holiday{
	"BW": {
		fixed("Heilige Drei Könige", time.January, 6),
		easterBased("Fronleichnam", 60),
		fixed("Allerheiligen", time.November, 1),
	},
	"BY": {
		fixed("Heilige Drei Könige", time.January, 6),
		easterBased("Fronleichnam", 60),
		fixed("Mariä Himmelfahrt", time.August, 15),
		fixed("Allerheiligen", time.November, 1),
	},
	"BE": {
		fixed("Internationaler Frauentag", time.March, 8),
	},
	"BB": {
		easterBased("Ostersonntag", 0),
		easterBased("Pfingstsonntag", 49),
		fixed("Reformationstag", time.October, 31),
	},
	"HB": {
		fixed("Reformationstag", time.October, 31),
	},
	"HH": {
		fixed("Reformationstag", time.October, 31),
	},
	"HE": {
		easterBased("Fronleichnam", 60),
	},
	"MV": {
		fixed("Reformationstag", time.October, 31),
	},
	"NI": {
		fixed("Reformationstag", time.October, 31),
	},
	"NW": {
		easterBased("Fronleichnam", 60),
		fixed("Allerheiligen", time.November, 1),
	},
	"RP": {
		easterBased("Fronleichnam", 60),
		fixed("Allerheiligen", time.November, 1),
	},
	"SL": {
		easterBased("Fronleichnam", 60),
		fixed("Mariä Himmelfahrt", time.August, 15),
		fixed("Allerheiligen", time.November, 1),
	},
	"SN": {
		fixed("Reformationstag", time.October, 31),
		{name: "Buß- und Bettag", special: bussUndBettag},
	},
	"ST": {
		fixed("Heilige Drei Könige", time.January, 6),
		fixed("Reformationstag", time.October, 31),
	},
	"SH": {
		fixed("Reformationstag", time.October, 31),
	},
	"TH": {
		fixed("Weltkindertag", time.September, 20),
		fixed("Reformationstag", time.October, 31),
	},
}

// easterSunday computes the date of Easter Sunday using the anonymous
// Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// bussUndBettag is the Wednesday before November 23
func bussUndBettag(year int) time.Time {
	d := time.Date(year, time.November, 22, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Wednesday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
