package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyFile is returned when the input has no header row.
var ErrEmptyFile = errors.New("empty file: no header row")

// Sheet is a raw table: one header row and the data rows beneath it.
type Sheet struct {
	Header []string
	Rows   [][]string
	Lines  []int // 1-based source line (or sheet row) of each entry in Rows
	Bytes  int64 // Bytes consumed from the source file
}

// ReadOptions configures how a source file is decoded.
type ReadOptions struct {
	Encoding  string // Text encoding for delimited files (default latin1)
	Delimiter rune   // Field delimiter for delimited files (default ',')
	Sheet     string // Worksheet for xlsx files (default: first sheet)
}

// Read loads the file at path, choosing the format by extension:
// .xlsx is read as a workbook, anything else as delimited text.
func Read(path string, opts ReadOptions) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, opts.Sheet)
	case ".csv", ".txt", ".tsv", "":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		return ReadCSV(f, opts)
	default:
		return nil, fmt.Errorf("unsupported format %q", filepath.Ext(path))
	}
}

// ReadCSV decodes delimited text from r.
func ReadCSV(r io.Reader, opts ReadOptions) (*Sheet, error) {
	counter := NewCountingReader(r)
	decoded, err := DecodeReader(counter, opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}

	s := &Sheet{Header: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		if isBlankRow(row) {
			continue
		}
		line, _ := reader.FieldPos(0)
		s.Rows = append(s.Rows, row)
		s.Lines = append(s.Lines, line)
	}
	s.Bytes = counter.BytesRead

	return s, nil
}

// ReadXLSX loads one worksheet of a workbook. An empty sheet name selects the
// first sheet.
func ReadXLSX(path, sheet string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyFile
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	s := &Sheet{Header: rows[0]}
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		s.Rows = append(s.Rows, row)
		s.Lines = append(s.Lines, i+2)
	}
	if info, err := os.Stat(path); err == nil {
		s.Bytes = info.Size()
	}

	return s, nil
}

// isBlankRow reports whether every cell is empty after trimming.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}
