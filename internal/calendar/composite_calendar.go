package calendar

import (
	"fmt"

	"go.uber.org/zap"
)

// Composite implements Source with fallback strategy
// Primary: APISource (network)
// Fallback: FileSource or GermanHolidays (local)
type Composite struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewComposite creates a new Composite source
func NewComposite(primary, fallback Source, logger *zap.Logger) *Composite {
	return &Composite{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays returns all public holidays of the given year
func (c *Composite) Holidays(year int) (Set, error) {
	set, err := c.primary.Holidays(year)
	if err == nil {
		return set, nil
	}

	c.logger.Warn("Primary holiday source failed, falling back",
		zap.Int("year", year),
		zap.Error(err))

	return c.fallback.Holidays(year)
}

// LoadFallback loads the fallback source (if FileSource)
func (c *Composite) LoadFallback() error {
	if fs, ok := c.fallback.(*FileSource); ok {
		if err := fs.Load(); err != nil {
			return fmt.Errorf("failed to load fallback holidays: %w", err)
		}
		c.logger.Info("Fallback holiday file loaded")
	}
	return nil
}
