// Package core provides the validation and repair pipeline for sales records.
//
// This package contains all domain logic independent of file formats, the
// CLI, or the console report. It can be driven by the salesclean command or by
// tests without modification.
//
// # Architecture
//
// Raw header and rows are coerced into a [Table] by [BuildTable], which fails
// fast with a [*SchemaError] or [*NumericError]. [Run] then applies six pure
// stages, each returning a new table plus diagnostics:
//
//  1. [Deduplicate]: drops rows whose ORDERNUMBER_ORDERLINENUMBER key was seen before
//  2. [CheckNonPositive]: counts SALES, PRICEEACH, QUANTITYORDERED values <= 0
//  3. [ReconcileSales]: overwrites SALES with QUANTITYORDERED × PRICEEACH and
//     records every row that disagreed by more than the tolerance
//  4. [ReconcileDates]: parses ORDERDATE column-wide and counts disagreements
//     with YEAR_ID, MONTH_ID, QTR_ID
//  5. [AuditMissing]: counts missing cells per input column
//  6. [NormalizeStatuses] and [Project]: title-cases STATUS and narrows each row
//     to [OutputColumns]
//
// Only the deduplicator removes rows. Every other finding is counted in the
// [Report] and never changes what is written.
//
// # Nullable Cells
//
// Cells are held as pgtype values (Int8, Float8, Text, Date). Valid=false
// marks a missing cell, or for OrderDate the unknown-date sentinel.
//
// # Error Handling
//
// Fatal errors are typed and mapped to coded user messages by [MapError]:
//
//   - SCH001: required column missing
//   - NUM001: non-numeric value in a numeric column
//   - DATE001: ORDERDATE readable by neither layout
//   - FILE001-FILE006: input/output problems reported by the I/O layer
package core
