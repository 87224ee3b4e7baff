// Package convert runs the content transformer over a directory of
// workbooks, writing one JSON document list per file.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/filatov87/SEO-BOG/internal/config"
	"github.com/filatov87/SEO-BOG/internal/content"
	"github.com/filatov87/SEO-BOG/internal/model"
	"github.com/filatov87/SEO-BOG/internal/sheet"
)

// Recorder persists the outcome of each converted file.
type Recorder interface {
	RecordConversion(conv model.Conversion, docs []model.ContentDocument, diags []model.Diagnostic) error
	RecordFailure(file string, diags []model.Diagnostic) error
}

// Converter turns content workbooks into JSON files under OutDir.
type Converter struct {
	Columns   config.ColumnsConfig
	OutDir    string
	Delimiter rune
	// Dialect forces the slot enumeration; nil detects it per file.
	Dialect  *content.Dialect
	Recorder Recorder
	// Progress, if set, is called after each file.
	Progress func(i, n int, res *FileResult)
}

// FileResult is the outcome of converting one file.
type FileResult struct {
	Path        string
	Conversion  model.Conversion
	Documents   []model.ContentDocument
	Diagnostics []model.Diagnostic
	// Err is set when the file could not be converted at all.
	Err error
}

// Summary totals a Run.
type Summary struct {
	Files       int
	Converted   int
	Failed      int
	Documents   int
	Diagnostics []model.Diagnostic
}

// EnsureDir creates dir and its parents if they do not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// Files lists the convertible files in dir, sorted by name.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !sheet.IsTableFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Run converts every workbook in srcDir. File-level failures are reported in
// the summary and do not stop the run; write and record failures do.
func (c *Converter) Run(ctx context.Context, srcDir string) (Summary, error) {
	var sum Summary

	files, err := Files(srcDir)
	if err != nil {
		return sum, err
	}
	if err := EnsureDir(c.OutDir); err != nil {
		return sum, err
	}

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res := c.ConvertFile(path)
		sum.Files++
		sum.Diagnostics = append(sum.Diagnostics, res.Diagnostics...)

		if res.Err != nil {
			sum.Failed++
			if c.Recorder != nil {
				if err := c.Recorder.RecordFailure(res.Conversion.SourceFile, res.Diagnostics); err != nil {
					return sum, fmt.Errorf("recording failure for %s: %w", path, err)
				}
			}
		} else {
			if err := writeJSON(res.Conversion.OutputFile, res.Documents); err != nil {
				return sum, err
			}
			if c.Recorder != nil {
				if err := c.Recorder.RecordConversion(res.Conversion, res.Documents, res.Diagnostics); err != nil {
					return sum, fmt.Errorf("recording conversion for %s: %w", path, err)
				}
			}
			sum.Converted++
			sum.Documents += len(res.Documents)
		}

		if c.Progress != nil {
			c.Progress(i+1, len(files), &res)
		}
	}

	return sum, nil
}

// ConvertFile reads and transforms one workbook without writing anything.
func (c *Converter) ConvertFile(path string) FileResult {
	name := filepath.Base(path)
	res := FileResult{
		Path: path,
		Conversion: model.Conversion{
			SourceFile: name,
			OutputFile: filepath.Join(c.OutDir, OutputName(name)),
		},
	}

	tbl, err := sheet.ReadFile(path, sheet.ReadOptions{Delimiter: c.Delimiter})
	if err == nil {
		err = tbl.Require(c.Columns.DepartureCode, c.Columns.DestinationCode,
			c.Columns.DepartureName, c.Columns.DestinationName)
	}
	if err != nil {
		res.Err = err
		res.Diagnostics = []model.Diagnostic{{File: name, Kind: model.DiagFile, Message: err.Error()}}
		return res
	}

	d := c.Dialect
	if d == nil {
		d = content.DetectDialect(tbl.Headers)
	}

	docs := []model.ContentDocument{}
	for i, r := range tbl.Rows {
		row := c.sourceRow(r)
		if content.IsBlank(row) {
			continue
		}

		doc, diags, err := content.Transform(row, d)
		for _, diag := range diags {
			diag.File = name
			diag.Row = i + 1
			res.Diagnostics = append(res.Diagnostics, diag)
		}
		if err != nil {
			if !errors.Is(err, content.ErrMissingIdentity) {
				res.Err = err
				return res
			}
			res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
				File: name, Row: i + 1, Kind: model.DiagIdentity, Message: err.Error(),
			})
			continue
		}
		docs = append(docs, doc)
	}

	res.Documents = docs
	res.Conversion.Dialect = d.Name
	res.Conversion.RowCount = len(tbl.Rows)
	res.Conversion.DocumentCount = len(docs)
	res.Conversion.ConvertedAt = time.Now().UTC().Format(time.RFC3339)
	return res
}

func (c *Converter) sourceRow(r sheet.Row) model.SourceRow {
	return model.SourceRow{
		DepartureCode:   r.Value(c.Columns.DepartureCode),
		DestinationCode: r.Value(c.Columns.DestinationCode),
		DepartureName:   r.Value(c.Columns.DepartureName),
		DestinationName: r.Value(c.Columns.DestinationName),
		FAQ:             r.Value(c.Columns.FAQ),
		Columns:         r.Map(),
	}
}

// OutputName maps a source file name to its JSON file name.
func OutputName(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".json"
}

// Encode renders documents the way they are written to disk: 4-space indent,
// HTML characters left unescaped.
func Encode(docs []model.ContentDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(docs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(path string, docs []model.ContentDocument) error {
	data, err := Encode(docs)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
