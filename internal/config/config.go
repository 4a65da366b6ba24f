package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Report   ReportConfig   `mapstructure:"report"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`
}

// ReportConfig represents the balance report inputs
type ReportConfig struct {
	File        string  `mapstructure:"file"`     // Kimai CSV export
	Dir         string  `mapstructure:"dir"`      // base directory for bare file names
	Year        int     `mapstructure:"year"`     // year the export belongs to (0 = current)
	Vacation    string  `mapstructure:"vacation"` // leave day count or leave file
	HoursPerDay float64 `mapstructure:"hours_per_day"`
}

// CalendarConfig represents holiday calendar configuration
type CalendarConfig struct {
	Type     string `mapstructure:"type"`   // "german", "api" or "file"
	Region   string `mapstructure:"region"` // German federal state code
	APIURL   string `mapstructure:"api_url"`
	CacheTTL string `mapstructure:"cache_ttl"`
	File     string `mapstructure:"file"` // holiday file for type "file"
}

// LogConfig represents diagnostic logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing config file is not an
// error: the defaults cover a plain CLI run.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.kimbal")
		v.AddConfigPath("/etc/kimbal")
	}

	v.SetDefault("report.file", "export.csv")
	v.SetDefault("report.dir", ".")
	v.SetDefault("report.vacation", "vacation.csv")
	v.SetDefault("report.hours_per_day", 8.0)
	v.SetDefault("calendar.type", "german")
	v.SetDefault("calendar.region", "SN")

	// Read environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Report.File == "" {
		return fmt.Errorf("report.file is required")
	}
	if c.Report.HoursPerDay <= 0 || c.Report.HoursPerDay > 24 {
		return fmt.Errorf("report.hours_per_day must be between 0 and 24")
	}

	switch c.Calendar.Type {
	case "", "german", "api":
	case "file":
		if c.Calendar.File == "" {
			return fmt.Errorf("calendar.file is required for calendar type 'file'")
		}
	default:
		return fmt.Errorf("calendar.type must be 'german', 'api' or 'file', got '%s'", c.Calendar.Type)
	}

	return nil
}

// GetYear returns the configured year, defaulting to the current year
func (c *ReportConfig) GetYear() int {
	if c.Year == 0 {
		return time.Now().Year()
	}
	return c.Year
}

// GetCacheTTL returns the holiday cache TTL duration
func (c *CalendarConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}
