// Package loader reads connectivity matrices from disk and writes analysis
// results back out.
//
// Supported inputs:
//   - .csv: comma separated values
//   - .xlsx: one worksheet (the first, unless WithSheet names another)
//   - anything else: whitespace separated values (.txt, .tsv, MATLAB -ascii)
//
// Blank lines are skipped. Every non-blank row must have the same number of
// columns.
package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/connectome/matrix"
)

// ErrParse reports a cell that is not a number.
var ErrParse = errors.New("loader: parse error")

// ErrShapeMismatch reports ragged rows.
var ErrShapeMismatch = matrix.ErrShapeMismatch

// Format selects the text layout understood by Read.
type Format int

const (
	// Whitespace separates cells by runs of spaces or tabs.
	Whitespace Format = iota
	// CSV separates cells by commas.
	CSV
	// XLSX is an Excel workbook.
	XLSX
)

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case XLSX:
		return "xlsx"
	default:
		return "whitespace"
	}
}

// FormatFor picks a format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV
	case ".xlsx", ".xlsm":
		return XLSX
	default:
		return Whitespace
	}
}

// Option configures Load and Read.
type Option func(*options)

type options struct {
	sheet string
}

// WithSheet selects a worksheet by name for XLSX input.
func WithSheet(name string) Option { return func(o *options) { o.sheet = name } }

// Load reads the matrix stored at path, choosing the format by extension.
func Load(path string, opts ...Option) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Read(f, FormatFor(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Read parses a matrix from r in the given format.
func Read(r io.Reader, format Format, opts ...Option) (*matrix.Dense, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var (
		rows [][]string
		err  error
	)
	switch format {
	case CSV:
		rows, err = readCSV(r)
	case XLSX:
		rows, err = readXLSX(r, o.sheet)
	default:
		rows, err = readFields(r)
	}
	if err != nil {
		return nil, err
	}

	return parseRows(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loader: csv: %w: %w", ErrParse, err)
	}

	return rows, nil
}

func readFields(r io.Reader) ([][]string, error) {
	var rows [][]string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		rows = append(rows, strings.Fields(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loader: read: %w", err)
	}

	return rows, nil
}

func readXLSX(r io.Reader, sheet string) ([][]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: read: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("loader: open Excel: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("loader: workbook has no sheets: %w", ErrParse)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("loader: get rows for sheet %q: %w", sheet, err)
	}

	return rows, nil
}

// parseRows converts string cells to a Dense, skipping blank rows.
func parseRows(rows [][]string) (*matrix.Dense, error) {
	values := make([][]float64, 0, len(rows))
	width := -1
	for line, row := range rows {
		if blank(row) {
			continue
		}
		if width < 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, fmt.Errorf("loader: row %d has %d columns, want %d: %w",
				line+1, len(row), width, ErrShapeMismatch)
		}
		vals := make([]float64, len(row))
		for col, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("loader: row %d column %d: %q: %w",
					line+1, col+1, cell, ErrParse)
			}
			vals[col] = v
		}
		values = append(values, vals)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("loader: no data: %w", matrix.ErrInvalidDimensions)
	}

	return matrix.NewFromRows(values)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
