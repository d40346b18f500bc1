package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salesclean/internal/cleaner"
	"github.com/JonMunkholm/salesclean/internal/config"
	"github.com/JonMunkholm/salesclean/internal/core"
	"github.com/JonMunkholm/salesclean/internal/logging"
	"github.com/JonMunkholm/salesclean/internal/metrics"
	"github.com/JonMunkholm/salesclean/internal/report"
	"github.com/JonMunkholm/salesclean/internal/tabular"
)

var cleanFlags struct {
	input          string
	output         string
	reportPath     string
	metricsPath    string
	encoding       string
	outputEncoding string
	tolerance      float64
	quiet          bool
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a sales export",
	Long: `Runs every cleaning stage over the input file and writes the cleaned table.

Nothing is written to the output path when a fatal error occurs: a missing
required column, text in a numeric column, or an ORDERDATE column that
neither date layout can read.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	f := cleanCmd.Flags()
	f.StringVarP(&cleanFlags.input, "input", "i", "", "input file, .csv or .xlsx (overrides INPUT_PATH)")
	f.StringVarP(&cleanFlags.output, "output", "o", "", "output file, .csv or .xlsx (overrides OUTPUT_PATH)")
	f.StringVar(&cleanFlags.reportPath, "report", "", "write the diagnostics report as YAML (overrides REPORT_PATH)")
	f.StringVar(&cleanFlags.metricsPath, "metrics", "", "write a Prometheus textfile snapshot (overrides METRICS_PATH)")
	f.StringVar(&cleanFlags.encoding, "encoding", "", "input encoding: latin1, windows1252, utf8 (overrides INPUT_ENCODING)")
	f.StringVar(&cleanFlags.outputEncoding, "output-encoding", "", "output encoding (overrides OUTPUT_ENCODING)")
	f.Float64Var(&cleanFlags.tolerance, "tolerance", core.DefaultSalesTolerance, "allowed SALES difference (overrides SALES_TOLERANCE)")
	f.BoolVarP(&cleanFlags.quiet, "quiet", "q", false, "suppress the console report (overrides REPORT_QUIET)")
	rootCmd.AddCommand(cleanCmd)
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("input", &cfg.Input.Path, cleanFlags.input)
	override("output", &cfg.Output.Path, cleanFlags.output)
	override("report", &cfg.Report.Path, cleanFlags.reportPath)
	override("metrics", &cfg.Report.MetricsPath, cleanFlags.metricsPath)
	override("encoding", &cfg.Input.Encoding, cleanFlags.encoding)
	override("output-encoding", &cfg.Output.Encoding, cleanFlags.outputEncoding)
	override("log-level", &cfg.Logging.Level, logLevel)
	override("log-format", &cfg.Logging.Format, logFormat)
	if flags.Changed("tolerance") {
		cfg.Pipeline.SalesTolerance = cleanFlags.tolerance
	}
	if flags.Changed("quiet") {
		cfg.Report.Quiet = cleanFlags.quiet
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func jobFromConfig(cfg *config.Config) cleaner.Job {
	return cleaner.Job{
		InputPath: cfg.Input.Path,
		Read: tabular.ReadOptions{
			Encoding:  cfg.Input.Encoding,
			Delimiter: config.DelimiterRune(cfg.Input.Delimiter),
			Sheet:     cfg.Input.Sheet,
		},
		OutputPath: cfg.Output.Path,
		Write: tabular.WriteOptions{
			Encoding:  cfg.Output.Encoding,
			Delimiter: config.DelimiterRune(cfg.Output.Delimiter),
			Sheet:     cfg.Output.Sheet,
		},
		Pipeline: core.Options{
			SalesTolerance: cfg.Pipeline.SalesTolerance,
			Dates: core.DateFormats{
				Primary:   cfg.Pipeline.DatePrimaryLayout,
				Secondary: cfg.Pipeline.DateSecondaryLayout,
			},
		},
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, runID := logging.NewRunContext(ctx)
	log := logging.FromContext(ctx)
	log.Debug("configuration loaded", "config", cfg.String())

	reg := metrics.NewRegistry()
	svc := cleaner.NewService(reg)

	res, runErr := svc.Run(ctx, jobFromConfig(cfg))
	reg.MarkRun(time.Now(), runErr == nil)
	if cfg.Report.MetricsPath != "" {
		if err := reg.WriteTextfile(cfg.Report.MetricsPath); err != nil {
			log.Warn("failed to write metrics", "path", cfg.Report.MetricsPath, "error", err)
		}
	}

	if runErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", core.FormatUserError(runErr))
		var phaseErr *cleaner.PhaseError
		if errors.As(runErr, &phaseErr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", phaseErr.Err)
		}
		return runErr
	}

	meta := report.Meta{
		RunID:       runID,
		Input:       cfg.Input.Path,
		Output:      cfg.Output.Path,
		GeneratedAt: time.Now(),
	}

	if cfg.Report.Path != "" {
		if err := report.WriteYAML(cfg.Report.Path, report.NewDocument(meta, res.Report)); err != nil {
			log.Error("failed to write report", "path", cfg.Report.Path, "error", err)
			return err
		}
		log.Info("report written", "path", cfg.Report.Path)
	}

	if !cfg.Report.Quiet {
		if err := report.Print(cmd.OutOrStdout(), meta, res.Report); err != nil {
			return err
		}
	}
	return nil
}
