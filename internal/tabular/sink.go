package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the worksheet written when none is configured.
const DefaultSheetName = "cleaned"

// WriteOptions configures how an output file is encoded.
type WriteOptions struct {
	Encoding  string // Text encoding for delimited files (default utf8)
	Delimiter rune   // Field delimiter for delimited files (default ',')
	Sheet     string // Worksheet name for xlsx files
}

// Write stores header and rows at path, choosing the format by extension.
// The file is written to a temporary name in the same directory and renamed
// into place only on success, so a failed write never leaves a partial file.
func Write(path string, header []string, rows [][]any, opts WriteOptions) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		write = func(w io.Writer) error { return writeXLSX(w, header, rows, opts.Sheet) }
	case ".csv", ".txt", ".tsv", "":
		write = func(w io.Writer) error { return writeCSV(w, header, rows, opts) }
	default:
		return fmt.Errorf("unsupported format %q", filepath.Ext(path))
	}

	if err := writeAtomic(path, write); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

const outputPerm os.FileMode = 0o644

// writeAtomic runs write against a temp file next to path and renames it
// over path once write and the close both succeed.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	// CreateTemp uses 0600; outputs are shared files.
	if err = tmp.Chmod(outputPerm); err != nil {
		return err
	}
	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeCSV(w io.Writer, header []string, rows [][]any, opts WriteOptions) error {
	encoding := opts.Encoding
	if encoding == "" {
		encoding = EncodingUTF8
	}
	ew, err := EncodeWriter(w, encoding)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(ew)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = FormatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return ew.Close()
}

func writeXLSX(w io.Writer, header []string, rows [][]any, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return f.Write(w)
}
