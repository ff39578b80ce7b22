package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/trendplot/schema"
)

// Default values for configuration.
const (
	DefaultSmoothWindow = 15
	DefaultPrecision    = 1
	DefaultDPI          = 199
	DefaultWidthInches  = 6.4
	DefaultHeightInches = 4.8
	MaxSmoothWindow     = 10000
	MinDPI              = 30
	MaxDPI              = 1200
	MaxPrecision        = 6
)

// Config holds the runtime configuration for a chart run.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath string
	Title     string
	Chart     schema.ChartKind

	OutputDir      string
	Format         schema.ImageFormat
	Renderer       schema.RendererKind
	SmoothWindow   int
	DateHint       schema.DateHint
	ShowRaw        bool
	ReferenceLines bool
	Subtitle       string
	DPI            int
	WidthInches    float64
	HeightInches   float64

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	TermWidth  int // Terminal width override (0 = auto-detect)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
	Verbose   bool // Enable debug logging
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	InputPathStr string
	TitleStr     string

	// --- Fields from rootCmd.PersistentFlags() ---
	Format           string  `mapstructure:"format"`
	OutputDir        string  `mapstructure:"output-dir"`
	SmoothWindow     int     `mapstructure:"smooth-window"`
	ShowRaw          bool    `mapstructure:"show-raw"`
	DateFormat       string  `mapstructure:"date-format"`
	Renderer         string  `mapstructure:"renderer"`
	DPI              int     `mapstructure:"dpi"`
	Width            float64 `mapstructure:"width"`
	Height           float64 `mapstructure:"height"`
	Subtitle         string  `mapstructure:"subtitle"`
	ReferenceLines   bool    `mapstructure:"reference-lines"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Precision        int     `mapstructure:"precision"`
	TermWidth        int     `mapstructure:"term-width"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`
	Color            string  `mapstructure:"color"`
	Verbose          bool    `mapstructure:"verbose"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ChartStyle derives the explicit presentation settings for a render call.
func (c *Config) ChartStyle() schema.ChartStyle {
	style := schema.DefaultChartStyle()
	if c.Format != "" {
		style.Format = c.Format
	}
	if c.WidthInches > 0 {
		style.WidthInches = c.WidthInches
	}
	if c.HeightInches > 0 {
		style.HeightInches = c.HeightInches
	}
	if c.DPI > 0 {
		style.DPI = c.DPI
	}
	style.ShowRaw = c.ShowRaw
	style.ReferenceLines = c.ReferenceLines
	return style
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateChartInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := resolveInputPath(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseHistoryBackend maps a raw backend string to a DatabaseBackend.
// An empty string disables history tracking.
func ParseHistoryBackend(s string) (schema.DatabaseBackend, error) {
	if s == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(s))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", s)
	}
	return backend, nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseHistoryBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates the table dump and display fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.TermWidth = input.TermWidth
	cfg.Verbose = input.Verbose
	cfg.Subtitle = input.Subtitle
	cfg.ShowRaw = input.ShowRaw
	cfg.ReferenceLines = input.ReferenceLines

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	if input.TermWidth < 0 {
		return fmt.Errorf("term-width cannot be negative (received %d)", input.TermWidth)
	}

	return nil
}

// validateChartInputs validates the rendering and smoothing fields.
func validateChartInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Image format and renderer ---
	cfg.Format = schema.ImageFormat(strings.ToLower(input.Format))
	if _, ok := schema.ValidImageFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid image format '%s'. must be png, svg", input.Format)
	}
	cfg.Renderer = schema.RendererKind(strings.ToLower(input.Renderer))
	if _, ok := schema.ValidRenderers[cfg.Renderer]; !ok {
		return fmt.Errorf("invalid renderer '%s'. must be gonum, gochart", input.Renderer)
	}

	// --- 2. Smoothing window ---
	if input.SmoothWindow < 1 || input.SmoothWindow > MaxSmoothWindow {
		return fmt.Errorf("smooth-window must be between 1 and %d (received %d)", MaxSmoothWindow, input.SmoothWindow)
	}
	cfg.SmoothWindow = input.SmoothWindow

	// --- 3. Date format hint ---
	hint := strings.TrimSpace(input.DateFormat)
	switch strings.ToLower(hint) {
	case "", string(schema.AutoDates):
		cfg.DateHint = schema.AutoDates
	case string(schema.RFC2822Dates):
		cfg.DateHint = schema.RFC2822Dates
	case string(schema.ISO8601Dates):
		cfg.DateHint = schema.ISO8601Dates
	default:
		// A custom Go layout must at least mention a year.
		if !strings.Contains(hint, "2006") && !strings.Contains(hint, "06") {
			return fmt.Errorf("invalid date-format '%s'. must be auto, rfc2822, iso8601 or a Go time layout", input.DateFormat)
		}
		cfg.DateHint = schema.DateHint(hint)
	}

	// --- 4. Image geometry ---
	if input.DPI < MinDPI || input.DPI > MaxDPI {
		return fmt.Errorf("dpi must be between %d and %d (received %d)", MinDPI, MaxDPI, input.DPI)
	}
	cfg.DPI = input.DPI
	if input.Width <= 0 || input.Height <= 0 {
		return fmt.Errorf("width and height must be positive (received %.2f x %.2f)", input.Width, input.Height)
	}
	cfg.WidthInches = input.Width
	cfg.HeightInches = input.Height

	// --- 5. Output directory ---
	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	return nil
}

// resolveInputPath checks the positional input file and records the title.
func resolveInputPath(cfg *Config, input *ConfigRawInput) error {
	cfg.Title = strings.TrimSpace(input.TitleStr)
	if input.InputPathStr == "" {
		return nil
	}
	absPath, err := filepath.Abs(input.InputPathStr)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("cannot read input %s: %w", input.InputPathStr, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input %s is a directory, expected a JSON file", input.InputPathStr)
	}
	cfg.InputPath = absPath
	return nil
}
