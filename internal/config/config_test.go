package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.Path != "sales_data_sample.csv" {
		t.Errorf("Input.Path = %q, want %q", cfg.Input.Path, "sales_data_sample.csv")
	}
	if cfg.Input.Encoding != "latin1" {
		t.Errorf("Input.Encoding = %q, want %q", cfg.Input.Encoding, "latin1")
	}
	if cfg.Output.Path != "sales_data_cleaned.csv" {
		t.Errorf("Output.Path = %q, want %q", cfg.Output.Path, "sales_data_cleaned.csv")
	}
	if cfg.Output.Encoding != "utf8" {
		t.Errorf("Output.Encoding = %q, want %q", cfg.Output.Encoding, "utf8")
	}
	if cfg.Pipeline.SalesTolerance != 0.01 {
		t.Errorf("Pipeline.SalesTolerance = %v, want %v", cfg.Pipeline.SalesTolerance, 0.01)
	}
	if cfg.Pipeline.DatePrimaryLayout != "1/2/2006" {
		t.Errorf("Pipeline.DatePrimaryLayout = %q, want %q", cfg.Pipeline.DatePrimaryLayout, "1/2/2006")
	}
	if cfg.Pipeline.DateSecondaryLayout != "2/1/2006" {
		t.Errorf("Pipeline.DateSecondaryLayout = %q, want %q", cfg.Pipeline.DateSecondaryLayout, "2/1/2006")
	}
	if cfg.Report.Quiet {
		t.Error("Report.Quiet = true, want false")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("INPUT_PATH", "in.xlsx")
	t.Setenv("OUTPUT_PATH", "out.xlsx")
	t.Setenv("SALES_TOLERANCE", "0.5")
	t.Setenv("REPORT_QUIET", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.Path != "in.xlsx" {
		t.Errorf("Input.Path = %q, want %q", cfg.Input.Path, "in.xlsx")
	}
	if cfg.Pipeline.SalesTolerance != 0.5 {
		t.Errorf("Pipeline.SalesTolerance = %v, want %v", cfg.Pipeline.SalesTolerance, 0.5)
	}
	if !cfg.Report.Quiet {
		t.Error("Report.Quiet = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("SALES_TOLERANCE", "a cent")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric SALES_TOLERANCE")
	}
	if !strings.Contains(err.Error(), "SALES_TOLERANCE") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Input:  InputConfig{Path: "in.csv", Encoding: "latin1", Delimiter: ","},
			Output: OutputConfig{Path: "out.csv", Encoding: "utf8", Delimiter: ","},
			Pipeline: PipelineConfig{
				SalesTolerance:      0.01,
				DatePrimaryLayout:   "1/2/2006",
				DateSecondaryLayout: "2/1/2006",
			},
			Logging: LoggingConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			modify: func(c *Config) {},
		},
		{
			name:    "unknown input encoding",
			modify:  func(c *Config) { c.Input.Encoding = "ebcdic" },
			wantErr: "INPUT_ENCODING",
		},
		{
			name:    "unknown output encoding",
			modify:  func(c *Config) { c.Output.Encoding = "utf16" },
			wantErr: "OUTPUT_ENCODING",
		},
		{
			name:    "negative tolerance",
			modify:  func(c *Config) { c.Pipeline.SalesTolerance = -1 },
			wantErr: "SALES_TOLERANCE",
		},
		{
			name:    "missing input path",
			modify:  func(c *Config) { c.Input.Path = "" },
			wantErr: "INPUT_PATH is required",
		},
		{
			name:    "output overwrites input",
			modify:  func(c *Config) { c.Output.Path = c.Input.Path },
			wantErr: "OUTPUT_PATH must differ",
		},
		{
			name:    "same date layouts",
			modify:  func(c *Config) { c.Pipeline.DateSecondaryLayout = c.Pipeline.DatePrimaryLayout },
			wantErr: "DATE_SECONDARY_LAYOUT",
		},
		{
			name:    "multi character delimiter",
			modify:  func(c *Config) { c.Input.Delimiter = ";;" },
			wantErr: "INPUT_DELIMITER",
		},
		{
			name:   "tab delimiter",
			modify: func(c *Config) { c.Output.Delimiter = "tab" },
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "invalid log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Input:    InputConfig{Path: "in.csv", Encoding: "bad", Delimiter: ","},
		Output:   OutputConfig{Path: "out.csv", Encoding: "utf8", Delimiter: ","},
		Pipeline: PipelineConfig{DatePrimaryLayout: "1/2/2006", DateSecondaryLayout: "2/1/2006"},
		Logging:  LoggingConfig{Level: "loud", Format: "text"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"INPUT_ENCODING", "LOG_LEVEL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestDelimiterRune(t *testing.T) {
	tests := []struct {
		in   string
		want rune
	}{
		{"", ','},
		{",", ','},
		{";", ';'},
		{"tab", '\t'},
		{`\t`, '\t'},
		{"|", '|'},
	}

	for _, tt := range tests {
		if got := DelimiterRune(tt.in); got != tt.want {
			t.Errorf("DelimiterRune(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Input:   InputConfig{Path: "in.csv", Encoding: "latin1"},
		Output:  OutputConfig{Path: "out.csv", Encoding: "utf8"},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}

	s := cfg.String()
	for _, want := range []string{`"in.csv"`, `"out.csv"`, `"json"`} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %s, missing %s", s, want)
		}
	}
}
