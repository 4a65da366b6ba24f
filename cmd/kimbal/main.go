package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/username/kimbal/internal/balance"
	"github.com/username/kimbal/internal/calendar"
	"github.com/username/kimbal/internal/config"
	"github.com/username/kimbal/internal/kimai"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// exitCodeLogNotFound is the distinct status for a missing Kimai export:
// without the primary log no computation is possible.
const exitCodeLogNotFound = 44

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kimbal",
		Short: "Kimai work-time balance",
		Long:  "Analyse exported Kimai time logs and balance worked hours against the demand of the covered period",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, kimai.ErrLogNotFound) {
			os.Exit(exitCodeLogNotFound)
		}
		os.Exit(1)
	}
}

func reportCmd() *cobra.Command {
	var (
		file      string
		dir       string
		year      int
		vacation  string
		region    string
		teeOutput string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute and print the work-time balance of a Kimai export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Explicit flags override the config file
			if cmd.Flags().Changed("file") {
				cfg.Report.File = file
			}
			if cmd.Flags().Changed("dir") {
				cfg.Report.Dir = dir
			}
			if cmd.Flags().Changed("year") {
				cfg.Report.Year = year
			}
			if cmd.Flags().Changed("vacation") {
				cfg.Report.Vacation = vacation
			}
			if cmd.Flags().Changed("region") {
				cfg.Calendar.Region = region
			}

			out := io.Writer(os.Stdout)
			if teeOutput != "" {
				if err := os.MkdirAll(filepath.Dir(teeOutput), 0o755); err != nil {
					return fmt.Errorf("failed to create tee path: %w", err)
				}
				f, err := os.OpenFile(teeOutput, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open tee-output file: %w", err)
				}
				defer f.Close()
				out = io.MultiWriter(os.Stdout, f)
			}

			return runReport(cfg, out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "export.csv", "Kimai CSV export file")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Base directory for input files")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year of the export (default: current year)")
	cmd.Flags().StringVar(&vacation, "vacation", "vacation.csv", "Leave day count or leave file")
	cmd.Flags().StringVar(&region, "region", "SN", "German federal state for holidays")
	cmd.Flags().StringVar(&teeOutput, "tee-output", "", "Mirror report output to file (empty to disable)")

	return cmd
}

func runReport(cfg *config.Config, out io.Writer) error {
	year := cfg.Report.GetYear()

	holidaySource, err := initHolidaySource(cfg)
	if err != nil {
		return err
	}

	logger.Info("Starting balance report",
		zap.String("file", cfg.Report.File),
		zap.Int("year", year),
		zap.String("region", cfg.Calendar.Region))

	log, err := kimai.ReadLog(cfg.Report.File, cfg.Report.Dir, year, logger)
	if err != nil {
		return err
	}

	engine := balance.NewEngine(holidaySource, cfg.Report.HoursPerDay, logger)
	leave := balance.ParseLeaveSource(cfg.Report.Vacation)

	b, err := engine.Compute(log, leave, cfg.Report.Dir)
	if err != nil {
		return err
	}

	balance.WriteReport(out, b)

	return nil
}

func initHolidaySource(cfg *config.Config) (calendar.Source, error) {
	switch cfg.Calendar.Type {
	case "", "german":
		return calendar.NewGermanHolidays(cfg.Calendar.Region)

	case "api":
		logger.Info("Using feiertage-api.de holiday API")
		primary := calendar.NewAPISource(
			cfg.Calendar.APIURL,
			cfg.Calendar.Region,
			cfg.Calendar.GetCacheTTL(),
			logger,
		)

		// Computed holidays back the API up when the network is down
		fallback, err := calendar.NewGermanHolidays(cfg.Calendar.Region)
		if err != nil {
			return nil, err
		}
		return calendar.NewComposite(primary, fallback, logger), nil

	case "file":
		src := calendar.NewFileSource(kimai.Filepath(cfg.Calendar.File, cfg.Report.Dir), logger)
		if err := src.Load(); err != nil {
			return nil, err
		}
		return src, nil

	default:
		return nil, fmt.Errorf("unknown calendar type: %s", cfg.Calendar.Type)
	}
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
