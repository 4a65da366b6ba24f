package balance

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/username/kimbal/internal/calendar"
	"github.com/username/kimbal/internal/kimai"
	"github.com/username/kimbal/pkg/dateutil"
	"go.uber.org/zap"
)

// LeaveSource is where the leave-day count comes from: an explicit integer
// or a CSV file of dated leave records.
type LeaveSource struct {
	count    int
	explicit bool
	file     string
}

// LeaveDays creates a LeaveSource from an explicit day count
func LeaveDays(n int) LeaveSource {
	return LeaveSource{count: n, explicit: true}
}

// LeaveFile creates a LeaveSource reading from a CSV file
func LeaveFile(name string) LeaveSource {
	return LeaveSource{file: name}
}

// ParseLeaveSource interprets an integer literal as an explicit day count
// and anything else as a file reference
func ParseLeaveSource(s string) LeaveSource {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return LeaveDays(n)
	}
	return LeaveFile(s)
}

// Resolve produces the leave-day count within the given period, plus the
// path of the leave file it was read from ("" for an explicit count).
//
// A missing leave file is recoverable: a warning is logged and zero days
// are returned. Single dates count when they fall inside the period; date
// ranges contribute their work-day count clipped to the period, so weekends
// and holidays inside a leave range are not counted as leave.
func (s LeaveSource) Resolve(dir string, holidays calendar.Set, period dateutil.Period, logger *zap.Logger) (int, string, error) {
	if s.explicit {
		return s.count, "", nil
	}

	path := kimai.Filepath(s.file, dir)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Leave file not found, leave days set to 0",
				zap.String("file", path))
			return 0, "", nil
		}
		return 0, "", fmt.Errorf("failed to open leave file %q: %w", path, err)
	}
	defer f.Close()

	days, err := countLeave(f, holidays, period)
	if err != nil {
		return 0, "", fmt.Errorf("leave file %q: %w", path, err)
	}

	logger.Info("Leave file loaded",
		zap.String("file", path),
		zap.Int("days", days))

	return days, path, nil
}

func countLeave(r io.Reader, holidays calendar.Set, period dateutil.Period) (int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	dateCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")), "date") {
			dateCol = i
			break
		}
	}
	if dateCol < 0 {
		return 0, fmt.Errorf("required column %q missing", "date")
	}

	days := 0
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read row %d: %w", row, err)
		}
		if dateCol >= len(record) {
			continue
		}

		// Either a single day "24.12.2022" or a range
		// "24.12.2022 - 31.12.2022" (spaces around the hyphen optional)
		parts := strings.Split(record[dateCol], "-")
		switch len(parts) {
		case 1:
			date, err := dateutil.ParseDayFirst(parts[0])
			if err != nil {
				return 0, fmt.Errorf("row %d: %w", row, err)
			}
			if period.Contains(date) {
				days++
			}
		case 2:
			from, err := dateutil.ParseDayFirst(parts[0])
			if err != nil {
				return 0, fmt.Errorf("row %d: %w", row, err)
			}
			to, err := dateutil.ParseDayFirst(parts[1])
			if err != nil {
				return 0, fmt.Errorf("row %d: %w", row, err)
			}
			days += CountDays(from, to, holidays, 0, period).WorkDays
		default:
			return 0, fmt.Errorf("row %d: unrecognized date %q", row, record[dateCol])
		}
	}

	return days, nil
}
