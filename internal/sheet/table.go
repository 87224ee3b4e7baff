// Package sheet reads and writes the tabular files the pipelines consume and
// produce: .xlsx workbooks and delimited text.
package sheet

import (
	"fmt"
	"strings"
)

// Table is a header row plus data rows, all cells as text.
type Table struct {
	Name    string
	Headers []string
	Rows    []Row

	index map[string]int
}

// Row is one data row of a Table.
type Row struct {
	table *Table
	Cells []string
}

// NewTable builds a Table from a header row and data rows. Header names are
// whitespace-trimmed; short rows are padded to the header width.
func NewTable(name string, headers []string, records [][]string) *Table {
	t := &Table{Name: name, index: make(map[string]int, len(headers))}
	for i, h := range headers {
		h = strings.TrimSpace(h)
		t.Headers = append(t.Headers, h)
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	for _, rec := range records {
		cells := make([]string, len(t.Headers))
		copy(cells, rec)
		t.Rows = append(t.Rows, Row{table: t, Cells: cells})
	}
	return t
}

// Has reports whether the table has a column named header.
func (t *Table) Has(header string) bool {
	_, ok := t.index[header]
	return ok
}

// Require returns an error naming every header that is not present.
func (t *Table) Require(headers ...string) error {
	var missing []string
	for _, h := range headers {
		if !t.Has(h) {
			missing = append(missing, fmt.Sprintf("%q", h))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing column(s) %s", t.Name, strings.Join(missing, ", "))
	}
	return nil
}

// Get returns the cell under header and whether the column exists.
func (r Row) Get(header string) (string, bool) {
	i, ok := r.table.index[header]
	if !ok {
		return "", false
	}
	return r.Cells[i], true
}

// Value returns the trimmed cell under header, or "" if the column is absent.
func (r Row) Value(header string) string {
	v, _ := r.Get(header)
	return strings.TrimSpace(v)
}

// Map returns the row as header -> cell text.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.table.Headers))
	for i, h := range r.table.Headers {
		if _, seen := m[h]; seen {
			continue
		}
		m[h] = r.Cells[i]
	}
	return m
}
