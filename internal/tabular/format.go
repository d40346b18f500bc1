package tabular

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// DecimalPlaces is the number of fractional digits written for decimal cells.
const DecimalPlaces = 2

// FormatCell renders a cell as text. Invalid pgtype values render empty.
func FormatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case pgtype.Text:
		if !c.Valid {
			return ""
		}
		return c.String
	case pgtype.Int8:
		if !c.Valid {
			return ""
		}
		return strconv.FormatInt(c.Int64, 10)
	case pgtype.Float8:
		if !c.Valid {
			return ""
		}
		return strconv.FormatFloat(c.Float64, 'f', DecimalPlaces, 64)
	default:
		return fmt.Sprint(v)
	}
}

// cellValue converts a cell to the native value stored in a workbook.
// Invalid pgtype values become nil (an empty cell).
func cellValue(v any) any {
	switch c := v.(type) {
	case pgtype.Text:
		if !c.Valid {
			return nil
		}
		return c.String
	case pgtype.Int8:
		if !c.Valid {
			return nil
		}
		return c.Int64
	case pgtype.Float8:
		if !c.Valid {
			return nil
		}
		scale := math.Pow10(DecimalPlaces)
		return math.Round(c.Float64*scale) / scale
	default:
		return v
	}
}
