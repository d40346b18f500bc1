// Package cleaner runs one cleaning job end to end: read the source file,
// build the typed table, run the pipeline and write the projected output.
package cleaner

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/salesclean/internal/core"
	"github.com/JonMunkholm/salesclean/internal/logging"
	"github.com/JonMunkholm/salesclean/internal/metrics"
	"github.com/JonMunkholm/salesclean/internal/tabular"
)

// Phase is the step a job is in when it finishes or fails.
type Phase string

const (
	PhaseReading    Phase = "reading"
	PhaseValidating Phase = "validating"
	PhaseCleaning   Phase = "cleaning"
	PhaseWriting    Phase = "writing"
	PhaseComplete   Phase = "complete"
)

// Job describes one input file and where its cleaned form goes.
type Job struct {
	InputPath  string
	Read       tabular.ReadOptions
	OutputPath string
	Write      tabular.WriteOptions
	Pipeline   core.Options
}

// Result is the outcome of a successful job.
type Result struct {
	Report     core.Report
	InputBytes int64
	Duration   time.Duration
}

// PhaseError records the phase a job failed in.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Service executes cleaning jobs.
type Service struct {
	metrics *metrics.Registry // Optional
}

// NewService creates a Service. m may be nil.
func NewService(m *metrics.Registry) *Service {
	return &Service{metrics: m}
}

// Run executes job. Nothing is written to job.OutputPath unless every stage
// succeeds. The context is checked between phases.
func (s *Service) Run(ctx context.Context, job Job) (*Result, error) {
	start := time.Now()
	log := logging.WithFields(ctx, "input", job.InputPath)

	fail := func(phase Phase, err error) (*Result, error) {
		log.Error("cleaning failed",
			"phase", phase,
			"error", err,
			"code", core.MapError(err).Code,
			"duration", time.Since(start),
		)
		return nil, &PhaseError{Phase: phase, Err: err}
	}

	// 1. Read
	log.Info("reading input")
	sheet, err := tabular.Read(job.InputPath, job.Read)
	if err != nil {
		return fail(PhaseReading, err)
	}
	log.Debug("input read", "rows", len(sheet.Rows), "columns", len(sheet.Header), "bytes", sheet.Bytes)
	if err := ctx.Err(); err != nil {
		return fail(PhaseReading, fmt.Errorf("operation cancelled: %w", err))
	}

	// 2. Validate and coerce
	table, err := core.BuildTableWithLines(sheet.Header, sheet.Rows, sheet.Lines)
	if err != nil {
		return fail(PhaseValidating, err)
	}
	if extra := table.ExtraColumns(); len(extra) > 0 {
		log.Debug("pass-through columns", "columns", extra)
	}
	if err := ctx.Err(); err != nil {
		return fail(PhaseValidating, fmt.Errorf("operation cancelled: %w", err))
	}

	// 3. Clean
	opts := job.Pipeline
	next := opts.OnProgress
	opts.OnProgress = func(p core.StageProgress) {
		log.Debug("stage complete",
			"stage", p.Stage,
			"step", fmt.Sprintf("%d/%d", p.Index, p.Total),
			"rows", p.Rows,
			"duration", p.Duration,
		)
		if s.metrics != nil {
			s.metrics.ObserveStage(p)
		}
		if next != nil {
			next(p)
		}
	}

	res, err := core.Run(table, opts)
	if err != nil {
		return fail(PhaseCleaning, err)
	}
	if res.Report.Dates.FellBack {
		log.Warn("order dates read with fallback layout",
			"layout", res.Report.Dates.Layout,
			"unknown", res.Report.Dates.Unknown,
		)
	}
	if err := ctx.Err(); err != nil {
		return fail(PhaseCleaning, fmt.Errorf("operation cancelled: %w", err))
	}

	// 4. Write
	rows := make([][]any, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = r.Values()
	}
	if err := tabular.Write(job.OutputPath, core.OutputColumns, rows, job.Write); err != nil {
		return fail(PhaseWriting, err)
	}

	if s.metrics != nil {
		s.metrics.ObserveReport(res.Report)
	}

	result := &Result{
		Report:     res.Report,
		InputBytes: sheet.Bytes,
		Duration:   time.Since(start),
	}
	log.Info("cleaning complete",
		"phase", PhaseComplete,
		"output", job.OutputPath,
		"rows_in", res.Report.InputRows,
		"rows_out", res.Report.OutputRows,
		"duplicates", res.Report.DuplicatesRemoved,
		"sales_mismatches", res.Report.Sales.Mismatches,
		"duration", result.Duration,
	)
	return result, nil
}
