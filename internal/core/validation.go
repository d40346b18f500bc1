package core

// validation.go turns a raw header and raw rows into a typed Table.
//
// Validation happens at two levels:
//  1. Header validation: every column in SalesFieldSpecs must be present
//  2. Cell coercion: numeric columns must hold numbers or be missing
//
// Both failures are fatal. The pipeline has no policy for a partially numeric
// column, so the first bad cell aborts the run with its line and column.

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// SchemaError reports required columns absent from the input header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// NumericError reports a non-numeric value in a numeric column.
type NumericError struct {
	Line   int    // Source line (header is line 1)
	Column string // Column name
	Value  string // The offending cell
	Err    error
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("line %d: invalid number in %s: %q", e.Line, e.Column, e.Value)
}

func (e *NumericError) Unwrap() error {
	return e.Err
}

// ValidateHeaders validates that all required columns exist in the header.
// Returns a mapping from column name to index, or a *SchemaError listing
// every missing column.
func ValidateHeaders(headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return idx, nil
}

// BuildTable validates the header and coerces every row into a Record.
// Short rows are padded with missing cells; surplus cells are ignored.
// Rows are numbered as if they directly follow the header on line 1.
func BuildTable(header []string, rows [][]string) (*Table, error) {
	return BuildTableWithLines(header, rows, nil)
}

// BuildTableWithLines is BuildTable with the source line of each row, for
// sources that skip blank lines. Rows beyond len(lines) are numbered i+2.
func BuildTableWithLines(header []string, rows [][]string, lines []int) (*Table, error) {
	idx, err := ValidateHeaders(header, SalesFieldSpecs)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = CleanCell(h)
	}
	t := &Table{Columns: columns, Rows: make([]Record, 0, len(rows))}

	extraPos := make([]int, 0)
	for i, col := range columns {
		if !isKnownColumn(col) {
			extraPos = append(extraPos, i)
		}
	}

	for i, row := range rows {
		line := i + 2
		if i < len(lines) {
			line = lines[i]
		}
		rec, err := buildRecord(row, line, idx, extraPos)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

// rowReader pulls typed cells out of one raw row, keeping the first
// coercion error.
type rowReader struct {
	row  []string
	line int
	idx  HeaderIndex
	err  error
}

func (r *rowReader) cell(col string) string {
	pos, ok := r.idx[strings.ToLower(col)]
	if !ok || pos >= len(r.row) {
		return ""
	}
	return r.row[pos]
}

func (r *rowReader) text(col string) pgtype.Text {
	return ToText(r.cell(col))
}

func (r *rowReader) int8(col string) pgtype.Int8 {
	if r.err != nil {
		return pgtype.Int8{}
	}
	raw := r.cell(col)
	v, err := ToInt8(raw)
	if err != nil {
		r.err = &NumericError{Line: r.line, Column: col, Value: raw, Err: err}
	}
	return v
}

func (r *rowReader) float8(col string) pgtype.Float8 {
	if r.err != nil {
		return pgtype.Float8{}
	}
	raw := r.cell(col)
	v, err := ToFloat8(raw)
	if err != nil {
		r.err = &NumericError{Line: r.line, Column: col, Value: raw, Err: err}
	}
	return v
}

func buildRecord(row []string, line int, idx HeaderIndex, extraPos []int) (Record, error) {
	r := &rowReader{row: row, line: line, idx: idx}

	rec := Record{
		Line:            line,
		OrderNumber:     r.int8(ColOrderNumber),
		OrderLineNumber: r.int8(ColOrderLineNumber),
		QuantityOrdered: r.int8(ColQuantityOrdered),
		PriceEach:       r.float8(ColPriceEach),
		Sales:           r.float8(ColSales),
		OrderDateRaw:    r.text(ColOrderDate),
		YearID:          r.int8(ColYearID),
		MonthID:         r.int8(ColMonthID),
		QuarterID:       r.int8(ColQuarterID),
		Status:          r.text(ColStatus),
		ProductLine:     r.text(ColProductLine),
		Country:         r.text(ColCountry),
		DealSize:        r.text(ColDealSize),
	}
	if r.err != nil {
		return Record{}, r.err
	}

	if len(extraPos) > 0 {
		rec.Extra = make([]pgtype.Text, len(extraPos))
		for i, pos := range extraPos {
			if pos < len(row) {
				rec.Extra[i] = ToText(row[pos])
			}
		}
	}

	return rec, nil
}
