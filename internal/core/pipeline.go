package core

import "time"

// Stage identifies one step of the cleaning pipeline.
type Stage string

const (
	StageDeduplicate  Stage = "deduplicate"
	StageNumeric      Stage = "numeric"
	StageIntegrity    Stage = "integrity"
	StageTemporal     Stage = "temporal"
	StageCompleteness Stage = "completeness"
	StageProject      Stage = "project"
)

// Stages lists the pipeline steps in execution order.
var Stages = []Stage{
	StageDeduplicate,
	StageNumeric,
	StageIntegrity,
	StageTemporal,
	StageCompleteness,
	StageProject,
}

// StageProgress is reported after each stage completes.
type StageProgress struct {
	Stage    Stage
	Index    int // 1-based position in Stages
	Total    int
	Rows     int // Rows in the table the stage produced
	Duration time.Duration
}

// ProgressCallback is called after every stage.
type ProgressCallback func(StageProgress)

// Options configures a pipeline run.
type Options struct {
	SalesTolerance float64
	Dates          DateFormats
	OnProgress     ProgressCallback // Optional
}

// DefaultOptions returns the tolerance and date layouts of a standard run.
func DefaultOptions() Options {
	return Options{
		SalesTolerance: DefaultSalesTolerance,
		Dates:          DefaultDateFormats,
	}
}

// Report aggregates the diagnostics of every stage. It is observational only.
type Report struct {
	InputRows          int
	DuplicatesRemoved  int
	NonPositive        NonPositiveCounts
	Sales              SalesAudit
	Dates              DateAudit
	Missing            []MissingCount
	StatusesNormalized int
	OutputRows         int
}

// Result is the output of a pipeline run.
type Result struct {
	Rows   []CleanRecord
	Report Report
}

// Run executes every stage over t and returns the projected rows with the
// diagnostics report. t is not modified. The only error is a
// *DateFormatError, in which case no result is produced.
func Run(t *Table, opts Options) (*Result, error) {
	if opts.Dates.Primary == "" || opts.Dates.Secondary == "" {
		opts.Dates = DefaultDateFormats
	}

	rep := Report{InputRows: len(t.Rows)}
	track := newStageTracker(opts.OnProgress)

	cur, removed := Deduplicate(t)
	rep.DuplicatesRemoved = removed
	track.done(StageDeduplicate, len(cur.Rows))

	rep.NonPositive = CheckNonPositive(cur)
	track.done(StageNumeric, len(cur.Rows))

	cur, rep.Sales = ReconcileSales(cur, opts.SalesTolerance)
	track.done(StageIntegrity, len(cur.Rows))

	cur, dates, err := ReconcileDates(cur, opts.Dates)
	if err != nil {
		return nil, err
	}
	rep.Dates = dates
	track.done(StageTemporal, len(cur.Rows))

	rep.Missing = AuditMissing(cur)
	track.done(StageCompleteness, len(cur.Rows))

	cur, rep.StatusesNormalized = NormalizeStatuses(cur)
	rows := Project(cur)
	rep.OutputRows = len(rows)
	track.done(StageProject, len(rows))

	return &Result{Rows: rows, Report: rep}, nil
}

type stageTracker struct {
	cb    ProgressCallback
	index int
	last  time.Time
}

func newStageTracker(cb ProgressCallback) *stageTracker {
	return &stageTracker{cb: cb, last: time.Now()}
}

func (s *stageTracker) done(stage Stage, rows int) {
	s.index++
	now := time.Now()
	if s.cb != nil {
		s.cb(StageProgress{
			Stage:    stage,
			Index:    s.index,
			Total:    len(Stages),
			Rows:     rows,
			Duration: now.Sub(s.last),
		})
	}
	s.last = now
}
