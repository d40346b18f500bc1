// Package metrics records a snapshot of one cleaning run as Prometheus
// gauges, for the node_exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JonMunkholm/salesclean/internal/core"
)

// Registry holds the gauges for one run on a private Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	RowsRead          prometheus.Gauge
	RowsWritten       prometheus.Gauge
	DuplicatesRemoved prometheus.Gauge
	NonPositive       *prometheus.GaugeVec
	SalesMismatches   prometheus.Gauge
	UnknownDates      prometheus.Gauge
	DateFallback      prometheus.Gauge
	DateMismatches    *prometheus.GaugeVec
	Missing           *prometheus.GaugeVec
	StageSeconds      *prometheus.GaugeVec
	LastRunTimestamp  prometheus.Gauge
	LastRunSuccess    prometheus.Gauge
}

// NewRegistry creates a Registry with every gauge registered and zeroed.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	rowsRead := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesclean_rows_read"})
	rowsWritten := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesclean_rows_written"})
	duplicates := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesclean_duplicates_removed"})
	nonPositive := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "salesclean_non_positive_values"}, []string{"column"})
	salesMismatches := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesclean_sales_mismatches"})
	unknownDates := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesclean_unknown_dates"})
	dateFallback := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesclean_date_fallback"})
	dateMismatches := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "salesclean_date_mismatches"}, []string{"field"})
	missing := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "salesclean_missing_values"}, []string{"column"})
	stageSeconds := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "salesclean_stage_duration_seconds"}, []string{"stage"})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesclean_last_run_timestamp_seconds"})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesclean_last_run_success"})

	r.MustRegister(rowsRead, rowsWritten, duplicates, nonPositive, salesMismatches, unknownDates,
		dateFallback, dateMismatches, missing, stageSeconds, lastRun, lastSuccess)
	return &Registry{
		reg:               r,
		RowsRead:          rowsRead,
		RowsWritten:       rowsWritten,
		DuplicatesRemoved: duplicates,
		NonPositive:       nonPositive,
		SalesMismatches:   salesMismatches,
		UnknownDates:      unknownDates,
		DateFallback:      dateFallback,
		DateMismatches:    dateMismatches,
		Missing:           missing,
		StageSeconds:      stageSeconds,
		LastRunTimestamp:  lastRun,
		LastRunSuccess:    lastSuccess,
	}
}

// ObserveStage records how long a stage took. It matches core.ProgressCallback.
func (r *Registry) ObserveStage(p core.StageProgress) {
	r.StageSeconds.WithLabelValues(string(p.Stage)).Set(p.Duration.Seconds())
}

// ObserveReport copies every diagnostic count into the gauges.
func (r *Registry) ObserveReport(rep core.Report) {
	r.RowsRead.Set(float64(rep.InputRows))
	r.RowsWritten.Set(float64(rep.OutputRows))
	r.DuplicatesRemoved.Set(float64(rep.DuplicatesRemoved))

	r.NonPositive.WithLabelValues(core.ColSales).Set(float64(rep.NonPositive.Sales))
	r.NonPositive.WithLabelValues(core.ColPriceEach).Set(float64(rep.NonPositive.PriceEach))
	r.NonPositive.WithLabelValues(core.ColQuantityOrdered).Set(float64(rep.NonPositive.QuantityOrdered))

	r.SalesMismatches.Set(float64(rep.Sales.Mismatches))

	r.UnknownDates.Set(float64(rep.Dates.Unknown))
	fallback := 0.0
	if rep.Dates.FellBack {
		fallback = 1
	}
	r.DateFallback.Set(fallback)
	r.DateMismatches.WithLabelValues("year").Set(float64(rep.Dates.YearMismatches))
	r.DateMismatches.WithLabelValues("month").Set(float64(rep.Dates.MonthMismatches))
	r.DateMismatches.WithLabelValues("quarter").Set(float64(rep.Dates.QuarterMismatches))

	for _, m := range rep.Missing {
		r.Missing.WithLabelValues(m.Column).Set(float64(m.Count))
	}
}

// MarkRun stamps the run time and outcome.
func (r *Registry) MarkRun(at time.Time, ok bool) {
	r.LastRunTimestamp.Set(float64(at.Unix()))
	success := 0.0
	if ok {
		success = 1
	}
	r.LastRunSuccess.Set(success)
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes the snapshot in the Prometheus text format. The file
// is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
