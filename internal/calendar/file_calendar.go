package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileSource implements Source using a local text file
type FileSource struct {
	filePath string
	logger   *zap.Logger
	data     map[int]Set // key: year
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
		data:     make(map[int]Set),
	}
}

// Load loads holiday data from file
func (fs *FileSource) Load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse line
		// Format: YYYY-MM-DD name
		// Example: 2022-10-31 Reformationstag
		parts := strings.SplitN(line, " ", 2)

		dateStr := parts[0]
		name := ""
		if len(parts) == 2 {
			name = strings.TrimSpace(parts[1])
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			fs.logger.Warn("Failed to parse date", zap.String("date", dateStr), zap.Error(err))
			continue
		}

		set, ok := fs.data[date.Year()]
		if !ok {
			set = make(Set)
			fs.data[date.Year()] = set
		}
		set.Add(date, name)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fs.logger.Info("Holiday file loaded",
		zap.String("file", fs.filePath),
		zap.Int("years", len(fs.data)))

	return nil
}

// Holidays returns all public holidays of the given year
func (fs *FileSource) Holidays(year int) (Set, error) {
	set, ok := fs.data[year]
	if !ok {
		return nil, fmt.Errorf("year not found in holiday file: %d", year)
	}
	return set, nil
}
