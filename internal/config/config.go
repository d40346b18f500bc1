// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

// Config holds all application configuration.
// All settings can be configured via environment variables; the CLI may
// override some of them with flags after loading.
type Config struct {
	Input    InputConfig
	Output   OutputConfig
	Report   ReportConfig
	Pipeline PipelineConfig
	Logging  LoggingConfig
}

// InputConfig holds source file settings.
type InputConfig struct {
	// Path is the sales export to clean (default: sales_data_sample.csv)
	Path string `env:"INPUT_PATH" default:"sales_data_sample.csv" validate:"required"`

	// Encoding is the text encoding of delimited input (default: latin1)
	Encoding string `env:"INPUT_ENCODING" default:"latin1" validate:"oneof=latin1 windows1252 utf8"`

	// Delimiter is the field separator of delimited input; "tab" for tabs (default: ,)
	Delimiter string `env:"INPUT_DELIMITER" default:","`

	// Sheet is the worksheet to read from xlsx input (default: first sheet)
	Sheet string `env:"INPUT_SHEET"`
}

// OutputConfig holds sink file settings.
type OutputConfig struct {
	// Path is where the cleaned table is written (default: sales_data_cleaned.csv)
	Path string `env:"OUTPUT_PATH" default:"sales_data_cleaned.csv" validate:"required"`

	// Encoding is the text encoding of delimited output (default: utf8)
	Encoding string `env:"OUTPUT_ENCODING" default:"utf8" validate:"oneof=latin1 windows1252 utf8"`

	// Delimiter is the field separator of delimited output (default: ,)
	Delimiter string `env:"OUTPUT_DELIMITER" default:","`

	// Sheet is the worksheet name for xlsx output (default: cleaned)
	Sheet string `env:"OUTPUT_SHEET" default:"cleaned"`
}

// ReportConfig holds diagnostics output settings.
type ReportConfig struct {
	// Path, when set, receives the full diagnostics report as YAML
	Path string `env:"REPORT_PATH"`

	// MetricsPath, when set, receives a Prometheus text-format snapshot of the run
	MetricsPath string `env:"METRICS_PATH"`

	// Quiet suppresses the console report (default: false)
	Quiet bool `env:"REPORT_QUIET" default:"false"`
}

// PipelineConfig holds cleaning rule settings.
type PipelineConfig struct {
	// SalesTolerance is the absolute difference allowed between SALES and
	// QUANTITYORDERED × PRICEEACH (default: 0.01)
	SalesTolerance float64 `env:"SALES_TOLERANCE" default:"0.01" validate:"gte=0"`

	// DatePrimaryLayout is the Go time layout tried first for ORDERDATE (default: 1/2/2006)
	DatePrimaryLayout string `env:"DATE_PRIMARY_LAYOUT" default:"1/2/2006" validate:"required"`

	// DateSecondaryLayout is the fallback layout for ORDERDATE (default: 2/1/2006)
	DateSecondaryLayout string `env:"DATE_SECONDARY_LAYOUT" default:"2/1/2006" validate:"required"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// DelimiterRune converts a configured delimiter to a rune.
// "tab" and `\t` select a tab; an empty value selects a comma.
func DelimiterRune(s string) rune {
	switch s {
	case "":
		return ','
	case "tab", `\t`:
		return '\t'
	}
	for _, r := range s {
		return r
	}
	return ','
}
