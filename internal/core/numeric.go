package core

// NonPositiveCounts holds the number of rows with a zero or negative value
// per column. A row may be counted in several buckets.
type NonPositiveCounts struct {
	Sales           int
	PriceEach       int
	QuantityOrdered int
}

// Total returns the sum of all buckets.
func (c NonPositiveCounts) Total() int {
	return c.Sales + c.PriceEach + c.QuantityOrdered
}

// CheckNonPositive counts values <= 0. Missing values are not counted and no
// row is altered.
func CheckNonPositive(t *Table) NonPositiveCounts {
	var c NonPositiveCounts
	for _, r := range t.Rows {
		if r.Sales.Valid && r.Sales.Float64 <= 0 {
			c.Sales++
		}
		if r.PriceEach.Valid && r.PriceEach.Float64 <= 0 {
			c.PriceEach++
		}
		if r.QuantityOrdered.Valid && r.QuantityOrdered.Int64 <= 0 {
			c.QuantityOrdered++
		}
	}
	return c
}
