package core

import "strings"

// MissingCount is the number of missing cells in one column.
type MissingCount struct {
	Column string
	Count  int
}

// AuditMissing counts missing values per input column, in header order.
// Once dates are parsed, ORDERDATE cells holding the unknown-date sentinel
// count as missing. The table is not modified.
func AuditMissing(t *Table) []MissingCount {
	counts := make([]MissingCount, len(t.Columns))
	extra := 0

	for i, col := range t.Columns {
		counts[i].Column = col

		present := presenceFunc(col, t.DatesParsed)
		if present == nil {
			pos := extra
			extra++
			present = func(r Record) bool {
				return pos < len(r.Extra) && r.Extra[pos].Valid
			}
		}

		for _, r := range t.Rows {
			if !present(r) {
				counts[i].Count++
			}
		}
	}
	return counts
}

// presenceFunc returns a predicate reporting whether a record holds a value
// for col, or nil if col is a pass-through column.
func presenceFunc(col string, datesParsed bool) func(Record) bool {
	switch strings.ToUpper(col) {
	case ColOrderNumber:
		return func(r Record) bool { return r.OrderNumber.Valid }
	case ColOrderLineNumber:
		return func(r Record) bool { return r.OrderLineNumber.Valid }
	case ColQuantityOrdered:
		return func(r Record) bool { return r.QuantityOrdered.Valid }
	case ColPriceEach:
		return func(r Record) bool { return r.PriceEach.Valid }
	case ColSales:
		return func(r Record) bool { return r.Sales.Valid }
	case ColOrderDate:
		if datesParsed {
			return func(r Record) bool { return r.OrderDate.Valid }
		}
		return func(r Record) bool { return r.OrderDateRaw.Valid }
	case ColYearID:
		return func(r Record) bool { return r.YearID.Valid }
	case ColMonthID:
		return func(r Record) bool { return r.MonthID.Valid }
	case ColQuarterID:
		return func(r Record) bool { return r.QuarterID.Valid }
	case ColStatus:
		return func(r Record) bool { return r.Status.Valid }
	case ColProductLine:
		return func(r Record) bool { return r.ProductLine.Valid }
	case ColCountry:
		return func(r Record) bool { return r.Country.Valid }
	case ColDealSize:
		return func(r Record) bool { return r.DealSize.Valid }
	}
	return nil
}
