package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeStatus lower-cases s and capitalizes the first letter of each
// whitespace-delimited word: "IN PROCESS" -> "In Process". Whitespace is
// preserved as-is. Applying it twice yields the same result.
func NormalizeStatus(s string) string {
	lower := cases.Lower(language.Und).String(s)

	var b strings.Builder
	b.Grow(len(lower))
	atWordStart := true
	for _, r := range lower {
		if unicode.IsSpace(r) {
			atWordStart = true
			b.WriteRune(r)
			continue
		}
		if atWordStart {
			r = unicode.ToUpper(r)
			atWordStart = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeStatuses returns a copy of t with every present STATUS normalized
// and the number of values that changed.
func NormalizeStatuses(t *Table) (*Table, int) {
	rows := make([]Record, len(t.Rows))
	changed := 0
	for i, r := range t.Rows {
		if r.Status.Valid {
			normalized := NormalizeStatus(r.Status.String)
			if normalized != r.Status.String {
				changed++
			}
			r.Status.String = normalized
		}
		rows[i] = r
	}
	return t.withRows(rows), changed
}

// Project narrows each record to the OutputColumns fields.
func Project(t *Table) []CleanRecord {
	out := make([]CleanRecord, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = CleanRecord{
			Sales:           r.Sales,
			Status:          r.Status,
			QuantityOrdered: r.QuantityOrdered,
			QuarterID:       r.QuarterID,
			MonthID:         r.MonthID,
			YearID:          r.YearID,
			ProductLine:     r.ProductLine,
			Country:         r.Country,
			DealSize:        r.DealSize,
		}
	}
	return out
}
