package core

import (
	"math"

	"github.com/jackc/pgx/v5/pgtype"
)

// DefaultSalesTolerance absorbs floating-point and rounding noise when
// comparing stored sales to quantity × price. Same unit as PRICEEACH.
const DefaultSalesTolerance = 0.01

// SalesMismatch is one row whose stored sales disagreed with quantity × price.
type SalesMismatch struct {
	Line            int
	Sales           pgtype.Float8 // As recorded
	Calculated      pgtype.Float8 // QuantityOrdered × PriceEach
	QuantityOrdered pgtype.Int8
	PriceEach       pgtype.Float8
}

// SalesAudit summarizes the integrity check.
type SalesAudit struct {
	Mismatches int
	Rows       []SalesMismatch // Populated only when Mismatches > 0
}

// ExpectedSales returns QuantityOrdered × PriceEach, or invalid if either
// input is missing.
func ExpectedSales(r Record) pgtype.Float8 {
	if !r.QuantityOrdered.Valid || !r.PriceEach.Valid {
		return pgtype.Float8{Valid: false}
	}
	return pgtype.Float8{
		Float64: float64(r.QuantityOrdered.Int64) * r.PriceEach.Float64,
		Valid:   true,
	}
}

// SalesClose reports whether stored and expected agree within tolerance.
// A missing value on either side is never close.
func SalesClose(stored, expected pgtype.Float8, tolerance float64) bool {
	if !stored.Valid || !expected.Valid {
		return false
	}
	return math.Abs(stored.Float64-expected.Float64) <= tolerance
}

// ReconcileSales compares every row's SALES to QuantityOrdered × PriceEach and
// then overwrites SALES with the computed value, matched or not.
func ReconcileSales(t *Table, tolerance float64) (*Table, SalesAudit) {
	var audit SalesAudit
	rows := make([]Record, len(t.Rows))

	for i, r := range t.Rows {
		expected := ExpectedSales(r)
		if !SalesClose(r.Sales, expected, tolerance) {
			audit.Mismatches++
			audit.Rows = append(audit.Rows, SalesMismatch{
				Line:            r.Line,
				Sales:           r.Sales,
				Calculated:      expected,
				QuantityOrdered: r.QuantityOrdered,
				PriceEach:       r.PriceEach,
			})
		}
		r.Sales = expected
		rows[i] = r
	}

	return t.withRows(rows), audit
}
