package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JonMunkholm/salesclean/internal/core"
	"github.com/JonMunkholm/salesclean/internal/tabular"
)

// styles are bound to one renderer so colour support is detected from the
// destination writer, not from stdout.
type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6")),
		section: r.NewStyle().Bold(true).MarginTop(1),
		label:   r.NewStyle().Width(28),
		ok:      r.NewStyle().Foreground(lipgloss.Color("#10B981")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	}
}

// Print writes a human-readable summary of rep to w.
func Print(w io.Writer, meta Meta, rep core.Report) error {
	s := newStyles(w)
	var b strings.Builder

	line := func(label string, value int) {
		style := s.ok
		if value > 0 {
			style = s.warn
		}
		b.WriteString(s.label.Render(label) + style.Render(strconv.Itoa(value)) + "\n")
	}

	b.WriteString(s.title.Render("Sales data cleaning report") + "\n")
	if meta.RunID != "" {
		b.WriteString(s.label.Render("Run") + meta.RunID + "\n")
	}
	b.WriteString(s.label.Render("Input") + meta.Input + "\n")
	b.WriteString(s.label.Render("Rows read") + strconv.Itoa(rep.InputRows) + "\n")

	b.WriteString(s.section.Render("Duplicates") + "\n")
	line("Duplicates removed", rep.DuplicatesRemoved)

	b.WriteString(s.section.Render("Negative or zero values") + "\n")
	line("SALES", rep.NonPositive.Sales)
	line("PRICEEACH", rep.NonPositive.PriceEach)
	line("QUANTITYORDERED", rep.NonPositive.QuantityOrdered)

	b.WriteString(s.section.Render("Sales integrity") + "\n")
	line("Mismatched sales rows", rep.Sales.Mismatches)
	if rep.Sales.Mismatches > 0 {
		b.WriteString(mismatchTable(rep.Sales.Rows) + "\n")
	}

	b.WriteString(s.section.Render("Order dates") + "\n")
	layout := fmt.Sprintf("%q", rep.Dates.Layout)
	if rep.Dates.FellBack {
		layout += s.warn.Render(" (fallback)")
	}
	b.WriteString(s.label.Render("Layout") + layout + "\n")
	line("Unknown dates", rep.Dates.Unknown)
	line("Year mismatches", rep.Dates.YearMismatches)
	line("Month mismatches", rep.Dates.MonthMismatches)
	line("Quarter mismatches", rep.Dates.QuarterMismatches)

	b.WriteString(s.section.Render("Missing values") + "\n")
	b.WriteString(missingTable(rep.Missing) + "\n")

	b.WriteString(s.section.Render("Output") + "\n")
	b.WriteString(s.label.Render("Statuses normalized") + strconv.Itoa(rep.StatusesNormalized) + "\n")
	b.WriteString(s.label.Render("Rows written") + strconv.Itoa(rep.OutputRows) + "\n")
	if meta.Output != "" {
		b.WriteString(s.label.Render("Saved as") + meta.Output + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func mismatchTable(rows []core.SalesMismatch) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LINE", core.ColSales, "CALCULATED", core.ColQuantityOrdered, core.ColPriceEach)
	for _, m := range rows {
		t.Row(
			strconv.Itoa(m.Line),
			tabular.FormatCell(m.Sales),
			tabular.FormatCell(m.Calculated),
			tabular.FormatCell(m.QuantityOrdered),
			tabular.FormatCell(m.PriceEach),
		)
	}
	return t.Render()
}

func missingTable(counts []core.MissingCount) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("COLUMN", "MISSING")
	for _, m := range counts {
		t.Row(m.Column, strconv.Itoa(m.Count))
	}
	return t.Render()
}
