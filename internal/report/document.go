// Package report renders pipeline diagnostics for people: a styled console
// summary and a YAML document for archiving next to the cleaned file.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/salesclean/internal/core"
)

// Meta identifies the run a report belongs to.
type Meta struct {
	RunID       string
	Input       string
	Output      string
	GeneratedAt time.Time
}

// Document is the YAML form of a run's diagnostics.
type Document struct {
	RunID              string          `yaml:"run_id"`
	Input              string          `yaml:"input"`
	Output             string          `yaml:"output"`
	GeneratedAt        time.Time       `yaml:"generated_at"`
	InputRows          int             `yaml:"input_rows"`
	OutputRows         int             `yaml:"output_rows"`
	DuplicatesRemoved  int             `yaml:"duplicates_removed"`
	NonPositive        NonPositive     `yaml:"non_positive"`
	Sales              SalesSection    `yaml:"sales"`
	Dates              DatesSection    `yaml:"dates"`
	Missing            []MissingColumn `yaml:"missing"`
	StatusesNormalized int             `yaml:"statuses_normalized"`
}

// NonPositive mirrors core.NonPositiveCounts.
type NonPositive struct {
	Sales           int `yaml:"sales"`
	PriceEach       int `yaml:"price_each"`
	QuantityOrdered int `yaml:"quantity_ordered"`
}

// SalesSection lists the integrity check result.
type SalesSection struct {
	Mismatches int           `yaml:"mismatches"`
	Rows       []MismatchRow `yaml:"rows,omitempty"`
}

// MismatchRow is one audited sales row; nil fields were missing.
type MismatchRow struct {
	Line            int      `yaml:"line"`
	Sales           *float64 `yaml:"sales"`
	Calculated      *float64 `yaml:"calculated_sales"`
	QuantityOrdered *int64   `yaml:"quantity_ordered"`
	PriceEach       *float64 `yaml:"price_each"`
}

// DatesSection lists the temporal reconciliation result.
type DatesSection struct {
	Layout            string `yaml:"layout"`
	FellBack          bool   `yaml:"fell_back"`
	Parsed            int    `yaml:"parsed"`
	Unknown           int    `yaml:"unknown"`
	YearMismatches    int    `yaml:"year_mismatches"`
	MonthMismatches   int    `yaml:"month_mismatches"`
	QuarterMismatches int    `yaml:"quarter_mismatches"`
}

// MissingColumn is the missing-value count of one input column.
type MissingColumn struct {
	Column string `yaml:"column"`
	Count  int    `yaml:"count"`
}

// NewDocument builds the YAML view of rep.
func NewDocument(meta Meta, rep core.Report) Document {
	doc := Document{
		RunID:             meta.RunID,
		Input:             meta.Input,
		Output:            meta.Output,
		GeneratedAt:       meta.GeneratedAt.UTC(),
		InputRows:         rep.InputRows,
		OutputRows:        rep.OutputRows,
		DuplicatesRemoved: rep.DuplicatesRemoved,
		NonPositive: NonPositive{
			Sales:           rep.NonPositive.Sales,
			PriceEach:       rep.NonPositive.PriceEach,
			QuantityOrdered: rep.NonPositive.QuantityOrdered,
		},
		Sales: SalesSection{Mismatches: rep.Sales.Mismatches},
		Dates: DatesSection{
			Layout:            rep.Dates.Layout,
			FellBack:          rep.Dates.FellBack,
			Parsed:            rep.Dates.Parsed,
			Unknown:           rep.Dates.Unknown,
			YearMismatches:    rep.Dates.YearMismatches,
			MonthMismatches:   rep.Dates.MonthMismatches,
			QuarterMismatches: rep.Dates.QuarterMismatches,
		},
		StatusesNormalized: rep.StatusesNormalized,
	}

	for _, m := range rep.Sales.Rows {
		doc.Sales.Rows = append(doc.Sales.Rows, MismatchRow{
			Line:            m.Line,
			Sales:           floatPtr(m.Sales),
			Calculated:      floatPtr(m.Calculated),
			QuantityOrdered: intPtr(m.QuantityOrdered),
			PriceEach:       floatPtr(m.PriceEach),
		})
	}
	for _, m := range rep.Missing {
		doc.Missing = append(doc.Missing, MissingColumn{Column: m.Column, Count: m.Count})
	}

	return doc
}

// WriteYAML stores doc at path.
func WriteYAML(path string, doc Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func floatPtr(v pgtype.Float8) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}
