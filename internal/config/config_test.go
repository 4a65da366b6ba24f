package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// No config file anywhere: defaults apply
	cwd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Report.File != "export.csv" {
		t.Errorf("Report.File = %q, want export.csv", cfg.Report.File)
	}
	if cfg.Report.Vacation != "vacation.csv" {
		t.Errorf("Report.Vacation = %q, want vacation.csv", cfg.Report.Vacation)
	}
	if cfg.Report.HoursPerDay != 8 {
		t.Errorf("Report.HoursPerDay = %v, want 8", cfg.Report.HoursPerDay)
	}
	if cfg.Calendar.Type != "german" {
		t.Errorf("Calendar.Type = %q, want german", cfg.Calendar.Type)
	}
	if cfg.Calendar.Region != "SN" {
		t.Errorf("Calendar.Region = %q, want SN", cfg.Calendar.Region)
	}
}

func TestLoad_File(t *testing.T) {
	content := `report:
  file: times.csv
  dir: data
  year: 2022
  vacation: "30"
calendar:
  type: file
  file: holidays.txt
log:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Report.File != "times.csv" {
		t.Errorf("Report.File = %q, want times.csv", cfg.Report.File)
	}
	if cfg.Report.GetYear() != 2022 {
		t.Errorf("GetYear() = %d, want 2022", cfg.Report.GetYear())
	}
	if cfg.Report.Vacation != "30" {
		t.Errorf("Report.Vacation = %q, want 30", cfg.Report.Vacation)
	}
	if cfg.Calendar.File != "holidays.txt" {
		t.Errorf("Calendar.File = %q, want holidays.txt", cfg.Calendar.File)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing report file",
			mutate:  func(c *Config) { c.Report.File = "" },
			wantErr: true,
		},
		{
			name:    "bad hours per day",
			mutate:  func(c *Config) { c.Report.HoursPerDay = 25 },
			wantErr: true,
		},
		{
			name:    "unknown calendar type",
			mutate:  func(c *Config) { c.Calendar.Type = "lunar" },
			wantErr: true,
		},
		{
			name:    "file calendar without file",
			mutate:  func(c *Config) { c.Calendar.Type = "file" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Report: ReportConfig{
					File:        "export.csv",
					Dir:         ".",
					Vacation:    "vacation.csv",
					HoursPerDay: 8,
				},
				Calendar: CalendarConfig{Type: "german", Region: "SN"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetCacheTTL(t *testing.T) {
	c := CalendarConfig{}
	if got := c.GetCacheTTL(); got != 24*time.Hour {
		t.Errorf("GetCacheTTL() = %v, want 24h", got)
	}

	c.CacheTTL = "1h30m"
	if got := c.GetCacheTTL(); got != 90*time.Minute {
		t.Errorf("GetCacheTTL() = %v, want 1h30m", got)
	}

	c.CacheTTL = "soon"
	if got := c.GetCacheTTL(); got != 24*time.Hour {
		t.Errorf("GetCacheTTL() = %v, want 24h fallback", got)
	}
}
