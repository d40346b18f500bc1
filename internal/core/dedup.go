package core

import (
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// DuplicateKey returns the composite key "<order number>_<order line number>".
// Missing parts render as "nan" so rows missing the same part still collide.
func DuplicateKey(r Record) string {
	return keyPart(r.OrderNumber) + "_" + keyPart(r.OrderLineNumber)
}

func keyPart(v pgtype.Int8) string {
	if !v.Valid {
		return "nan"
	}
	return strconv.FormatInt(v.Int64, 10)
}

// Deduplicate keeps the first row for each DuplicateKey, preserving relative
// order, and returns the number of rows removed.
func Deduplicate(t *Table) (*Table, int) {
	seen := make(map[string]struct{}, len(t.Rows))
	kept := make([]Record, 0, len(t.Rows))

	for _, r := range t.Rows {
		key := DuplicateKey(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, r)
	}

	return t.withRows(kept), len(t.Rows) - len(kept)
}
