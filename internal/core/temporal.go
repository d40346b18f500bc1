package core

// temporal.go parses ORDERDATE and cross-checks it against YEAR_ID, MONTH_ID
// and QTR_ID.
//
// The layout is chosen once for the whole column:
//
//  1. The primary layout (month/day/year) wins if it parses at least one
//     present cell. Cells it rejects become the unknown-date sentinel.
//  2. If it parses none, the secondary layout (day/month/year) is used for
//     every row, again with rejected cells left unknown.
//  3. If the secondary layout parses no present cell either, the column is
//     rejected with a *DateFormatError.
//
// There is no per-row detection. In a column mixing both layouts the
// day-first cells that month/day cannot read are left unknown, and any whose
// day is 12 or less are silently read with month and day swapped.

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateFormats holds the two Go time layouts tried for ORDERDATE.
type DateFormats struct {
	Primary   string
	Secondary string
}

// DefaultDateFormats is month/day/year with a day/month/year fallback.
var DefaultDateFormats = DateFormats{
	Primary:   "1/2/2006",
	Secondary: "2/1/2006",
}

// timeSuffixes are accepted after the date part; exports often carry "0:00".
var timeSuffixes = []string{"", " 15:04", " 15:04:05"}

// DateStatus tags the outcome of parsing one cell.
type DateStatus int

const (
	DateUnknown DateStatus = iota
	DateParsed
)

// DateResult is the parse outcome for one cell.
type DateResult struct {
	Status DateStatus
	Date   time.Time // Zero unless Status == DateParsed
}

// DateFormatError reports that neither layout could read the column.
type DateFormatError struct {
	Primary   string
	Secondary string
	Line      int    // First line the secondary layout rejected
	Value     string // Its cell value
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date column: neither %q nor %q parses %s (line %d: %q)",
		e.Primary, e.Secondary, ColOrderDate, e.Line, e.Value)
}

// ParseDate parses s with layout, allowing a trailing time of day.
func ParseDate(s, layout string) (time.Time, error) {
	var firstErr error
	for _, suffix := range timeSuffixes {
		t, err := time.Parse(layout+suffix, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// ParseDateColumn applies the column-wide two-attempt strategy. It returns one
// result per value, the layout that was used, and a *DateFormatError when both
// layouts reject the column. lines gives the source line of each value for
// error reporting and may be nil.
func ParseDateColumn(values []pgtype.Text, lines []int, f DateFormats) ([]DateResult, string, error) {
	primary, failed, parsed := parseAll(values, f.Primary)
	if parsed > 0 || failed < 0 {
		return primary, f.Primary, nil
	}

	secondary, firstFail, parsed := parseAll(values, f.Secondary)
	if parsed == 0 {
		err := &DateFormatError{Primary: f.Primary, Secondary: f.Secondary}
		if firstFail >= 0 {
			err.Value = values[firstFail].String
			if firstFail < len(lines) {
				err.Line = lines[firstFail]
			}
		}
		return nil, "", err
	}
	return secondary, f.Secondary, nil
}

// parseAll parses every present value with layout. It returns the results,
// the index of the first present value that failed (-1 if none) and the
// number parsed.
func parseAll(values []pgtype.Text, layout string) ([]DateResult, int, int) {
	results := make([]DateResult, len(values))
	firstFail := -1
	parsed := 0

	for i, v := range values {
		if !v.Valid {
			continue
		}
		t, err := ParseDate(v.String, layout)
		if err != nil {
			if firstFail < 0 {
				firstFail = i
			}
			continue
		}
		results[i] = DateResult{Status: DateParsed, Date: t}
		parsed++
	}
	return results, firstFail, parsed
}

// Quarter returns the calendar quarter (1-4) of month (1-12).
func Quarter(month int) int {
	return (month + 2) / 3
}

// DateAudit summarizes the temporal reconciliation.
type DateAudit struct {
	Layout            string // Layout used for the whole column
	FellBack          bool   // True if the secondary layout was used
	Parsed            int
	Unknown           int // Rows left with the unknown-date sentinel
	YearMismatches    int
	MonthMismatches   int
	QuarterMismatches int
}

// ReconcileDates parses ORDERDATE, stores the result on each record and
// counts disagreements with YEAR_ID, MONTH_ID and QTR_ID. Rows where either
// side is unknown are skipped. The authoritative ID fields are not modified.
func ReconcileDates(t *Table, f DateFormats) (*Table, DateAudit, error) {
	values := make([]pgtype.Text, len(t.Rows))
	lines := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		values[i] = r.OrderDateRaw
		lines[i] = r.Line
	}

	results, layout, err := ParseDateColumn(values, lines, f)
	if err != nil {
		return nil, DateAudit{}, err
	}

	audit := DateAudit{Layout: layout, FellBack: layout != f.Primary}
	rows := make([]Record, len(t.Rows))

	for i, r := range t.Rows {
		res := results[i]
		if res.Status != DateParsed {
			r.OrderDate = pgtype.Date{Valid: false}
			audit.Unknown++
			rows[i] = r
			continue
		}

		r.OrderDate = pgtype.Date{Time: res.Date, Valid: true}
		audit.Parsed++

		month := int(res.Date.Month())
		if r.YearID.Valid && int64(res.Date.Year()) != r.YearID.Int64 {
			audit.YearMismatches++
		}
		if r.MonthID.Valid && int64(month) != r.MonthID.Int64 {
			audit.MonthMismatches++
		}
		if r.QuarterID.Valid && int64(Quarter(month)) != r.QuarterID.Int64 {
			audit.QuarterMismatches++
		}
		rows[i] = r
	}

	out := t.withRows(rows)
	out.DatesParsed = true
	return out, audit, nil
}
