package core

// convert.go provides conversion functions from raw cell text to pgtype values.
//
// These functions handle the messy reality of exported sales data:
//   - Missing-value markers (NA, N/A, NULL, NaN, ...)
//   - Currency symbols and thousand separators in numbers
//   - Integer columns exported as floats ("30.0")
//   - Excel formula prefixes (="value") and stray quotes
//
// Text conversions never fail; an empty or NA cell becomes Valid=false.
// Numeric conversions return an error for cells that are present but not numeric.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// naTokens are the cell values treated as missing, in addition to the empty
// string. Matching is exact after CleanCell.
var naTokens = map[string]struct{}{
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a cleaned cell value represents a missing value.
func IsMissing(s string) bool {
	if s == "" {
		return true
	}
	_, ok := naTokens[s]
	return ok
}

// ToText converts a cell to pgtype.Text.
// Returns invalid if the cell is empty or a missing-value marker.
func ToText(s string) pgtype.Text {
	s = CleanCell(s)
	if IsMissing(s) {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToFloat8 converts a cell to pgtype.Float8.
// Handles currency symbols, thousands separators, and accounting format (parentheses for negative).
func ToFloat8(s string) (pgtype.Float8, error) {
	s, ok := cleanNumeric(s)
	if !ok {
		return pgtype.Float8{Valid: false}, nil
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Float8{}, fmt.Errorf("invalid number %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return pgtype.Float8{}, fmt.Errorf("invalid number %q", s)
	}
	return pgtype.Float8{Float64: f, Valid: true}, nil
}

// ToInt8 converts a cell to pgtype.Int8.
// Integral floats such as "30.0" are accepted; "30.5" is not.
func ToInt8(s string) (pgtype.Int8, error) {
	s, ok := cleanNumeric(s)
	if !ok {
		return pgtype.Int8{Valid: false}, nil
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Int8{}, fmt.Errorf("invalid integer %q", s)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return pgtype.Int8{Int64: i, Valid: true}, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return pgtype.Int8{}, fmt.Errorf("invalid integer %q", s)
	}
	return pgtype.Int8{Int64: int64(f), Valid: true}, nil
}

// cleanNumeric strips presentation artifacts from a numeric cell.
// Returns ok=false for missing cells. The result is not format-checked.
func cleanNumeric(s string) (string, bool) {
	s = CleanCell(s)
	if IsMissing(s) {
		return "", false
	}

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// Remove common currency symbols and thousands separators
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}
	return s, true
}

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; dup {
			continue // first occurrence wins
		}
		idx[key] = i
	}
	return idx
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}
