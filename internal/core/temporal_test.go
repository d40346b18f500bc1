package core

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		layout  string
		want    time.Time
		wantErr bool
	}{
		{"month first", "2/24/2003", "1/2/2006", time.Date(2003, 2, 24, 0, 0, 0, 0, time.UTC), false},
		{"zero padded", "02/04/2003", "1/2/2006", time.Date(2003, 2, 4, 0, 0, 0, 0, time.UTC), false},
		{"with midnight time", "2/24/2003 0:00", "1/2/2006", time.Date(2003, 2, 24, 0, 0, 0, 0, time.UTC), false},
		{"time is dropped", "5/7/2003 13:45:10", "1/2/2006", time.Date(2003, 5, 7, 0, 0, 0, 0, time.UTC), false},
		{"day first", "24/2/2003", "2/1/2006", time.Date(2003, 2, 24, 0, 0, 0, 0, time.UTC), false},
		{"month out of range", "24/2/2003", "1/2/2006", time.Time{}, true},
		{"not a date", "soon", "1/2/2006", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, tt.layout)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuarter(t *testing.T) {
	want := []int{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4}
	for m := 1; m <= 12; m++ {
		if got := Quarter(m); got != want[m-1] {
			t.Errorf("Quarter(%d) = %d, want %d", m, got, want[m-1])
		}
	}
}

// ----------------------------------------------------------------------------
// ParseDateColumn Tests
// ----------------------------------------------------------------------------

func texts(values ...string) []pgtype.Text {
	out := make([]pgtype.Text, len(values))
	for i, v := range values {
		out[i] = ToText(v)
	}
	return out
}

func TestParseDateColumn_Primary(t *testing.T) {
	results, layout, err := ParseDateColumn(texts("2/24/2003", "", "12/1/2004"), nil, DefaultDateFormats)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if layout != DefaultDateFormats.Primary {
		t.Errorf("layout = %q, want primary", layout)
	}
	if results[1].Status != DateUnknown {
		t.Error("missing cell should be unknown")
	}
	if results[2].Date.Month() != time.December {
		t.Errorf("third date = %v, want December", results[2].Date)
	}
}

func TestParseDateColumn_Fallback(t *testing.T) {
	results, layout, err := ParseDateColumn(texts("24/2/2003", "13/12/2004", "2/30/2004"), nil, DefaultDateFormats)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if layout != DefaultDateFormats.Secondary {
		t.Errorf("layout = %q, want secondary", layout)
	}
	if results[0].Status != DateParsed || results[0].Date.Day() != 24 {
		t.Errorf("first = %+v, want 24 Feb", results[0])
	}
	if results[2].Status != DateUnknown {
		t.Errorf("third = %+v, want unknown under the secondary layout", results[2])
	}
}

// One unreadable cell is left unknown; it does not move the column to the
// day-first layout.
func TestParseDateColumn_StrayBadCellKeepsPrimary(t *testing.T) {
	results, layout, err := ParseDateColumn(texts("2/3/2003", "5/7/2003", "11/4/2004", "TBD"), nil, DefaultDateFormats)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if layout != DefaultDateFormats.Primary {
		t.Errorf("layout = %q, want primary", layout)
	}

	want := []time.Time{
		time.Date(2003, 2, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2003, 5, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2004, 11, 4, 0, 0, 0, 0, time.UTC),
	}
	for i, w := range want {
		if results[i].Status != DateParsed || !results[i].Date.Equal(w) {
			t.Errorf("results[%d] = %+v, want %v", i, results[i], w)
		}
	}
	if results[3].Status != DateUnknown {
		t.Errorf("results[3] = %+v, want unknown", results[3])
	}
}

// A column mixing both layouts stays on the primary layout: day-first cells
// it cannot read are unknown and ambiguous ones are read month-first.
func TestParseDateColumn_MixedLayoutsMisreadDayFirstDates(t *testing.T) {
	results, layout, err := ParseDateColumn(texts("13/1/2003", "2/3/2003", "4/1/2003"), nil, DefaultDateFormats)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if layout != DefaultDateFormats.Primary {
		t.Errorf("layout = %q, want primary", layout)
	}
	if results[0].Status != DateUnknown {
		t.Errorf("first = %+v, want unknown", results[0])
	}

	got := results[2].Date
	if got.Month() != time.April || got.Day() != 1 {
		t.Errorf("third date = %v, want 1 April", got)
	}
}

func TestParseDateColumn_BothLayoutsFail(t *testing.T) {
	_, _, err := ParseDateColumn(texts("", "2003-02-24", "later"), []int{2, 3, 4}, DefaultDateFormats)

	var dateErr *DateFormatError
	if !errors.As(err, &dateErr) {
		t.Fatalf("error = %v, want *DateFormatError", err)
	}
	if dateErr.Line != 3 || dateErr.Value != "2003-02-24" {
		t.Errorf("DateFormatError = line %d %q, want line 3 %q", dateErr.Line, dateErr.Value, "2003-02-24")
	}
}

func TestParseDateColumn_AllMissing(t *testing.T) {
	results, layout, err := ParseDateColumn(texts("", "NA"), nil, DefaultDateFormats)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if layout != DefaultDateFormats.Primary {
		t.Errorf("layout = %q, want primary", layout)
	}
	for i, r := range results {
		if r.Status != DateUnknown {
			t.Errorf("results[%d] = %+v, want unknown", i, r)
		}
	}
}

// ----------------------------------------------------------------------------
// ReconcileDates Tests
// ----------------------------------------------------------------------------

func TestReconcileDates(t *testing.T) {
	tbl := mustBuildTable(t,
		nil,
		map[string]string{ColOrderNumber: "2", ColOrderDate: "5/7/2003", ColMonthID: "5", ColQuarterID: "1"},
		map[string]string{ColOrderNumber: "3", ColOrderDate: "11/1/2004", ColYearID: "2003", ColMonthID: "11", ColQuarterID: "4"},
		map[string]string{ColOrderNumber: "4", ColOrderDate: ""},
		map[string]string{ColOrderNumber: "5", ColYearID: ""},
	)

	out, audit, err := ReconcileDates(tbl, DefaultDateFormats)
	if err != nil {
		t.Fatalf("ReconcileDates() error = %v", err)
	}

	want := DateAudit{
		Layout:            DefaultDateFormats.Primary,
		Parsed:            4,
		Unknown:           1,
		YearMismatches:    1,
		MonthMismatches:   0,
		QuarterMismatches: 1,
	}
	if audit != want {
		t.Errorf("audit = %+v, want %+v", audit, want)
	}

	if !out.DatesParsed {
		t.Error("DatesParsed should be set")
	}
	first := out.Rows[0].OrderDate
	if !first.Valid || !first.Time.Equal(time.Date(2003, 2, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first OrderDate = %+v, want 2003-02-24", first)
	}
	if out.Rows[3].OrderDate.Valid {
		t.Error("missing ORDERDATE should stay unknown")
	}
	if out.Rows[2].YearID.Int64 != 2003 {
		t.Error("YEAR_ID must not be corrected")
	}
}

func TestReconcileDates_NoMismatchOnConsistentRow(t *testing.T) {
	tbl := mustBuildTable(t, map[string]string{ColOrderDate: "2/24/2003"})

	_, audit, err := ReconcileDates(tbl, DefaultDateFormats)
	if err != nil {
		t.Fatalf("ReconcileDates() error = %v", err)
	}
	if audit.YearMismatches+audit.MonthMismatches+audit.QuarterMismatches != 0 {
		t.Errorf("audit = %+v, want no mismatches", audit)
	}
}

func TestReconcileDates_FallbackReported(t *testing.T) {
	tbl := mustBuildTable(t,
		map[string]string{ColOrderDate: "24/2/2003"},
		map[string]string{ColOrderNumber: "2", ColOrderDate: "13/5/2003", ColMonthID: "5", ColQuarterID: "2"},
		map[string]string{ColOrderNumber: "3", ColOrderDate: "TBD"},
	)

	out, audit, err := ReconcileDates(tbl, DefaultDateFormats)
	if err != nil {
		t.Fatalf("ReconcileDates() error = %v", err)
	}
	if !audit.FellBack || audit.Layout != DefaultDateFormats.Secondary {
		t.Errorf("audit = %+v, want secondary layout", audit)
	}
	if audit.Parsed != 2 || audit.Unknown != 1 || out.Rows[2].OrderDate.Valid {
		t.Errorf("audit = %+v, want 2 parsed and the TBD row unknown", audit)
	}
	if d := out.Rows[1].OrderDate.Time; d.Month() != time.May || d.Day() != 13 {
		t.Errorf("second OrderDate = %v, want 13 May", d)
	}
}

func TestReconcileDates_StrayBadCellStaysLocal(t *testing.T) {
	tbl := mustBuildTable(t,
		nil,
		map[string]string{ColOrderNumber: "2", ColOrderDate: "TBD"},
	)

	out, audit, err := ReconcileDates(tbl, DefaultDateFormats)
	if err != nil {
		t.Fatalf("ReconcileDates() error = %v", err)
	}
	if audit.FellBack || audit.Parsed != 1 || audit.Unknown != 1 {
		t.Errorf("audit = %+v, want primary layout with one unknown", audit)
	}
	if audit.YearMismatches+audit.MonthMismatches+audit.QuarterMismatches != 0 {
		t.Errorf("audit = %+v, want no mismatches", audit)
	}
	first := out.Rows[0].OrderDate
	if !first.Valid || !first.Time.Equal(time.Date(2003, 2, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first OrderDate = %+v, want 2003-02-24", first)
	}
}
