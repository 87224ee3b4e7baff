package sheet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Workbook accumulates rows across named sheets and saves them as .xlsx.
type Workbook struct {
	file      *excelize.File
	wrapStyle int
	next      map[string]int // next row number per sheet
	used      bool           // whether the default sheet has been claimed
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating cell style: %w", err)
	}
	return &Workbook{file: f, wrapStyle: style, next: make(map[string]int)}, nil
}

// AddSheet creates a sheet and writes its header row. The first sheet added
// takes over the workbook's default sheet.
func (w *Workbook) AddSheet(name string, headers ...string) error {
	if _, ok := w.next[name]; ok {
		return fmt.Errorf("sheet %q already exists", name)
	}
	if !w.used {
		if err := w.file.SetSheetName(w.file.GetSheetName(0), name); err != nil {
			return fmt.Errorf("renaming default sheet: %w", err)
		}
		w.used = true
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %q: %w", name, err)
	}
	w.next[name] = 1
	return w.writeRow(name, headers, false)
}

// AppendRow writes cells as the next row of sheet, with text wrapping.
func (w *Workbook) AppendRow(sheet string, cells ...string) error {
	if _, ok := w.next[sheet]; !ok {
		return fmt.Errorf("unknown sheet %q", sheet)
	}
	return w.writeRow(sheet, cells, true)
}

func (w *Workbook) writeRow(sheet string, cells []string, wrap bool) error {
	row := w.next[sheet]
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := w.file.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("writing row %d of %q: %w", row, sheet, err)
	}

	if wrap && len(cells) > 0 {
		end, err := excelize.CoordinatesToCellName(len(cells), row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellStyle(sheet, start, end, w.wrapStyle); err != nil {
			return fmt.Errorf("styling row %d of %q: %w", row, sheet, err)
		}
	}

	w.next[sheet] = row + 1
	return nil
}

// SaveAs writes the workbook, creating parent directories as needed.
func (w *Workbook) SaveAs(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	return w.file.SaveAs(path)
}

// Close releases the workbook's resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
