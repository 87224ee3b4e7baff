package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupported is returned for files that are neither .xlsx nor .csv.
var ErrUnsupported = errors.New("unsupported file type")

// ReadOptions controls how ReadFile parses a file.
type ReadOptions struct {
	// Sheet selects an .xlsx sheet; empty means the first sheet.
	Sheet string
	// Delimiter separates .csv fields; zero means ','.
	Delimiter rune
}

// IsTableFile reports whether path looks like an input table. Office lock
// files (~$name.xlsx) and dotfiles are excluded.
func IsTableFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// ReadFile loads a table from an .xlsx or .csv file.
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path, opts.Sheet)
	case ".csv":
		return ReadCSV(path, opts.Delimiter)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
}

// ReadXLSX loads one sheet of a workbook. The first row is the header.
func ReadXLSX(path, sheetName string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q is empty", path, sheetName)
	}

	return NewTable(filepath.Base(path), rows[0], rows[1:]), nil
}

// ReadCSV loads a delimited text file. The first record is the header.
func ReadCSV(path string, delimiter rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	if delimiter != 0 {
		r.Comma = delimiter
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: CSV file is empty", path)
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	return NewTable(filepath.Base(path), headers, records[1:]), nil
}
