package kimai

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/username/kimbal/pkg/dateutil"
	"go.uber.org/zap"
)

// requiredColumns are the Kimai export columns the reader depends on.
// "h:m" is never evaluated but its presence is part of the export contract.
var requiredColumns = []string{"Date", "In", "Out", "h:m", "Time"}

// Session is one logged work interval after normalization. End is always at
// or after Start; sessions running past midnight have End advanced by one
// day. Hours is the precomputed float from the export and is summed
// independently of End-Start (the two may diverge).
type Session struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
	Hours    float64
}

// Log is an immutable snapshot of one Kimai export: the normalized sessions
// and the period they cover. Constructed once by ReadLog; no setters exist.
type Log struct {
	file     string
	year     int
	period   dateutil.Period
	sessions []Session
}

// File returns the path of the Kimai export the log was read from
func (l *Log) File() string { return l.file }

// Year returns the year the log was interpreted against
func (l *Log) Year() int { return l.year }

// Period returns the date range covered by the log
func (l *Log) Period() dateutil.Period { return l.period }

// Sessions returns a copy of the normalized sessions
func (l *Log) Sessions() []Session {
	out := make([]Session, len(l.sessions))
	copy(out, l.sessions)
	return out
}

// Filepath joins dir and name unless name already carries a path separator
func Filepath(name, dir string) string {
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return name
	}
	return filepath.Join(dir, name)
}

// ReadLog reads a Kimai CSV export and normalizes it into a Log.
//
// The export lists sessions newest first: the covered period runs from the
// date of the last row to the date of the first row. Date cells hold day and
// month only ("30.11."); the year is supplied by the caller.
func ReadLog(file, dir string, year int, logger *zap.Logger) (*Log, error) {
	path := Filepath(file, dir)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", path, ErrLogNotFound)
		}
		return nil, fmt.Errorf("failed to open kimai log %q: %w", path, err)
	}
	defer f.Close()

	log, err := parseLog(f, year)
	if err != nil {
		return nil, err
	}
	log.file = path

	logger.Info("Kimai log loaded",
		zap.String("file", path),
		zap.Int("sessions", len(log.sessions)),
		zap.String("period", log.period.String()))

	return log, nil
}

func parseLog(r io.Reader, year int) (*Log, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyLog
		}
		return nil, fmt.Errorf("failed to read kimai header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &MissingColumnError{Column: name}
		}
	}

	var sessions []Session
	var firstEnd, lastStart time.Time

	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read kimai row %d: %w", row, err)
		}

		date := record[cols["Date"]]
		start, err := combineClock(date, year, record[cols["In"]])
		if err != nil {
			return nil, &ParseError{Field: "In", Value: date + " " + record[cols["In"]], Row: row}
		}
		end, err := combineClock(date, year, record[cols["Out"]])
		if err != nil {
			return nil, &ParseError{Field: "Out", Value: date + " " + record[cols["Out"]], Row: row}
		}

		hoursStr := strings.TrimSpace(record[cols["Time"]])
		hours, err := strconv.ParseFloat(hoursStr, 64)
		if err != nil {
			return nil, &ParseError{Field: "Time", Value: hoursStr, Row: row}
		}

		// Period bounds come from the raw timestamps, before any
		// midnight correction.
		if row == 1 {
			firstEnd = end
		}
		lastStart = start

		// A session running past midnight ends on the next day
		if start.After(end) {
			end = end.AddDate(0, 0, 1)
		}

		sessions = append(sessions, Session{
			Start:    start,
			End:      end,
			Duration: end.Sub(start),
			Hours:    hours,
		})
	}

	if len(sessions) == 0 {
		return nil, ErrEmptyLog
	}

	period, err := dateutil.NewPeriod(lastStart, firstEnd)
	if err != nil {
		return nil, fmt.Errorf("period %s to %s: %w",
			lastStart.Format("2006-01-02"), firstEnd.Format("2006-01-02"), ErrRowOrder)
	}

	return &Log{
		year:     year,
		period:   period,
		sessions: sessions,
	}, nil
}

// combineClock builds a timestamp from a day-month cell ("30.11."), the
// configured year, and a clock cell ("07:30").
func combineClock(date string, year int, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if !strings.HasSuffix(date, ".") {
		date += "."
	}
	combined := date + strconv.Itoa(year) + " " + strings.TrimSpace(clock)

	formats := []string{
		"2.1.2006 15:04",
		"2.1.2006 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, combined); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", combined)
}

// NewLog builds a Log from already-normalized sessions, for callers that do
// not go through a CSV export. The session slice is copied.
func NewLog(year int, period dateutil.Period, sessions []Session, file string) *Log {
	copied := make([]Session, len(sessions))
	copy(copied, sessions)
	return &Log{
		file:     file,
		year:     year,
		period:   period,
		sessions: copied,
	}
}
