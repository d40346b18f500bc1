// Package sample generates synthetic sales exports with controllable defects.
// It feeds the sample command and the pipeline benchmarks.
package sample

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Header is the column layout of the classic sales export.
var Header = []string{
	"ORDERNUMBER", "QUANTITYORDERED", "PRICEEACH", "ORDERLINENUMBER", "SALES",
	"ORDERDATE", "STATUS", "QTR_ID", "MONTH_ID", "YEAR_ID", "PRODUCTLINE", "MSRP",
	"PRODUCTCODE", "CUSTOMERNAME", "PHONE", "ADDRESSLINE1", "ADDRESSLINE2", "CITY",
	"STATE", "POSTALCODE", "COUNTRY", "TERRITORY", "CONTACTLASTNAME",
	"CONTACTFIRSTNAME", "DEALSIZE",
}

var (
	statuses     = []string{"Shipped", "Cancelled", "Resolved", "On Hold", "In Process", "Disputed"}
	productLines = []string{"Motorcycles", "Classic Cars", "Trucks and Buses", "Vintage Cars", "Planes", "Ships", "Trains"}
	territories  = []string{"NA", "EMEA", "APAC", "Japan"}
)

// Options controls the size and defect mix of a generated export. Rates are
// fractions in [0, 1].
type Options struct {
	Rows             int
	Seed             int64
	DuplicateRate    float64 // Rows repeated with the same order and line number
	MismatchRate     float64 // Rows whose SALES disagrees with quantity × price
	DirtyStatus      float64 // Rows whose STATUS is upper- or lower-cased
	MissingState     float64 // Rows with an empty STATE
	DayFirstDates    bool    // Write ORDERDATE as D/M/YYYY
	IncludeTimeOfDay bool    // Append " 0:00" to ORDERDATE
}

// DefaultOptions mirrors the defect rates seen in real exports.
func DefaultOptions() Options {
	return Options{
		Rows:             2823,
		Seed:             1,
		DuplicateRate:    0.01,
		MismatchRate:     0.02,
		DirtyStatus:      0.05,
		MissingState:     0.5,
		IncludeTimeOfDay: true,
	}
}

// Generate returns a header and opts.Rows data rows.
func Generate(opts Options) ([]string, [][]string) {
	f := gofakeit.New(opts.Seed)
	rows := make([][]string, 0, opts.Rows)

	start := time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2005, 5, 31, 0, 0, 0, 0, time.UTC)

	order := 10100
	line := 0
	for len(rows) < opts.Rows {
		if len(rows) > 0 && f.Float64() < opts.DuplicateRate {
			dup := make([]string, len(rows[len(rows)-1]))
			copy(dup, rows[len(rows)-1])
			rows = append(rows, dup)
			continue
		}

		line++
		if line > f.Number(1, 18) {
			order++
			line = 1
		}
		rows = append(rows, generateRow(f, opts, order, line, f.DateRange(start, end)))
	}
	return Header, rows
}

func generateRow(f *gofakeit.Faker, opts Options, order, line int, date time.Time) []string {
	qty := f.Number(6, 97)
	price := float64(f.Number(2663, 10000)) / 100
	sales := float64(qty) * price
	if f.Float64() < opts.MismatchRate {
		sales += float64(f.Number(1, 500))
	}

	status := f.RandomString(statuses)
	if f.Float64() < opts.DirtyStatus {
		status = dirty(f, status)
	}

	month := int(date.Month())
	orderDate := fmt.Sprintf("%d/%d/%d", month, date.Day(), date.Year())
	if opts.DayFirstDates {
		orderDate = fmt.Sprintf("%d/%d/%d", date.Day(), month, date.Year())
	}
	if opts.IncludeTimeOfDay {
		orderDate += " 0:00"
	}

	state := f.State()
	if f.Float64() < opts.MissingState {
		state = ""
	}

	dealSize := "Small"
	switch {
	case sales >= 7000:
		dealSize = "Large"
	case sales >= 3000:
		dealSize = "Medium"
	}

	addr := f.Address()
	return []string{
		strconv.Itoa(order),
		strconv.Itoa(qty),
		strconv.FormatFloat(price, 'f', 2, 64),
		strconv.Itoa(line),
		strconv.FormatFloat(sales, 'f', 2, 64),
		orderDate,
		status,
		strconv.Itoa((month + 2) / 3),
		strconv.Itoa(month),
		strconv.Itoa(date.Year()),
		f.RandomString(productLines),
		strconv.Itoa(f.Number(33, 214)),
		f.Numerify("S##_####"),
		f.Company(),
		f.Phone(),
		addr.Street,
		"",
		addr.City,
		state,
		addr.Zip,
		addr.Country,
		f.RandomString(territories),
		f.LastName(),
		f.FirstName(),
		dealSize,
	}
}

func dirty(f *gofakeit.Faker, status string) string {
	if f.Bool() {
		return strings.ToUpper(status)
	}
	return strings.ToLower(status)
}
