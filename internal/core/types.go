// Package core provides the validation and repair pipeline for sales records.
// This package has no I/O dependencies and can be used by any frontend.
package core

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// Column names as they appear in the sales export header.
const (
	ColOrderNumber     = "ORDERNUMBER"
	ColOrderLineNumber = "ORDERLINENUMBER"
	ColQuantityOrdered = "QUANTITYORDERED"
	ColPriceEach       = "PRICEEACH"
	ColSales           = "SALES"
	ColOrderDate       = "ORDERDATE"
	ColYearID          = "YEAR_ID"
	ColMonthID         = "MONTH_ID"
	ColQuarterID       = "QTR_ID"
	ColStatus          = "STATUS"
	ColProductLine     = "PRODUCTLINE"
	ColCountry         = "COUNTRY"
	ColDealSize        = "DEALSIZE"
)

// FieldType represents the expected data type for an input column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInt
	FieldDecimal
	FieldDate
)

// FieldSpec defines validation rules for a single input column.
type FieldSpec struct {
	Name     string    // Column header name (matched case-insensitively)
	Type     FieldType // Expected data type
	Required bool      // Column must exist in the header
}

// SalesFieldSpecs lists every column the pipeline reads. Columns not listed
// here are carried through as text and dropped at projection.
var SalesFieldSpecs = []FieldSpec{
	{Name: ColOrderNumber, Type: FieldInt, Required: true},
	{Name: ColOrderLineNumber, Type: FieldInt, Required: true},
	{Name: ColQuantityOrdered, Type: FieldInt, Required: true},
	{Name: ColPriceEach, Type: FieldDecimal, Required: true},
	{Name: ColSales, Type: FieldDecimal, Required: true},
	{Name: ColOrderDate, Type: FieldDate, Required: true},
	{Name: ColYearID, Type: FieldInt, Required: true},
	{Name: ColMonthID, Type: FieldInt, Required: true},
	{Name: ColQuarterID, Type: FieldInt, Required: true},
	{Name: ColStatus, Type: FieldText, Required: true},
	{Name: ColProductLine, Type: FieldText, Required: true},
	{Name: ColCountry, Type: FieldText, Required: true},
	{Name: ColDealSize, Type: FieldText, Required: true},
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// Record is one sales line item. Every field is nullable; Valid=false means
// the cell was missing on input (or, for OrderDate, could not be parsed).
type Record struct {
	Line int // 1-based line in the source file (the header is line 1)

	OrderNumber     pgtype.Int8
	OrderLineNumber pgtype.Int8

	QuantityOrdered pgtype.Int8
	PriceEach       pgtype.Float8
	Sales           pgtype.Float8

	OrderDateRaw pgtype.Text
	OrderDate    pgtype.Date // Populated by ReconcileDates
	YearID       pgtype.Int8
	MonthID      pgtype.Int8
	QuarterID    pgtype.Int8

	Status      pgtype.Text
	ProductLine pgtype.Text
	Country     pgtype.Text
	DealSize    pgtype.Text

	// Extra holds pass-through columns, aligned with Table.ExtraColumns.
	Extra []pgtype.Text
}

// Table is an ordered sequence of records sharing one input header.
type Table struct {
	// Columns is the cleaned input header in original order.
	Columns []string

	Rows []Record

	// DatesParsed is set once ReconcileDates has populated Record.OrderDate.
	// Until then the completeness audit judges ORDERDATE by its raw text.
	DatesParsed bool
}

// ExtraColumns returns the input columns the pipeline does not interpret,
// in header order.
func (t *Table) ExtraColumns() []string {
	var extra []string
	for _, col := range t.Columns {
		if !isKnownColumn(col) {
			extra = append(extra, col)
		}
	}
	return extra
}

// withRows returns a shallow copy of t holding rows.
func (t *Table) withRows(rows []Record) *Table {
	return &Table{
		Columns:     t.Columns,
		Rows:        rows,
		DatesParsed: t.DatesParsed,
	}
}

func isKnownColumn(col string) bool {
	for _, spec := range SalesFieldSpecs {
		if strings.EqualFold(spec.Name, col) {
			return true
		}
	}
	return false
}

// CleanRecord is one row of the projected output.
type CleanRecord struct {
	Sales           pgtype.Float8
	Status          pgtype.Text
	QuantityOrdered pgtype.Int8
	QuarterID       pgtype.Int8
	MonthID         pgtype.Int8
	YearID          pgtype.Int8
	ProductLine     pgtype.Text
	Country         pgtype.Text
	DealSize        pgtype.Text
}

// OutputColumns is the header of the projected output, in order.
var OutputColumns = []string{
	ColSales,
	ColStatus,
	ColQuantityOrdered,
	ColQuarterID,
	ColMonthID,
	ColYearID,
	ColProductLine,
	ColCountry,
	ColDealSize,
}

// Values returns the record's cells in OutputColumns order. Each element is
// one of pgtype.Float8, pgtype.Int8 or pgtype.Text.
func (r CleanRecord) Values() []any {
	return []any{
		r.Sales,
		r.Status,
		r.QuantityOrdered,
		r.QuarterID,
		r.MonthID,
		r.YearID,
		r.ProductLine,
		r.Country,
		r.DealSize,
	}
}
