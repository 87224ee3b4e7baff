package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "pairs.xlsx")

	wb, err := NewWorkbook()
	require.NoError(t, err)
	require.NoError(t, wb.AddSheet("English", "City", "Why visit {city}?"))
	require.NoError(t, wb.AppendRow("English", "Lima", "Ceviche.\nSurf."))
	require.NoError(t, wb.AddSheet("SPANISH TXT", "City", "Why visit {city}?"))
	require.NoError(t, wb.AppendRow("SPANISH TXT", "Lima", "Ceviche."))
	require.Error(t, wb.AddSheet("English"))
	require.Error(t, wb.AppendRow("Missing", "x"))
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	tbl, err := ReadXLSX(path, "")
	require.NoError(t, err)
	require.Equal(t, "pairs.xlsx", tbl.Name)
	require.Equal(t, []string{"City", "Why visit {city}?"}, tbl.Headers)
	require.Len(t, tbl.Rows, 1)
	require.Equal(t, "Ceviche.\nSurf.", tbl.Rows[0].Value("Why visit {city}?"))

	es, err := ReadXLSX(path, "SPANISH TXT")
	require.NoError(t, err)
	require.Equal(t, "Ceviche.", es.Rows[0].Value("Why visit {city}?"))
}

func TestReadXLSX_TrimsHeadersAndPadsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{" Lead Departure City ", "F.A.Q.", "Notes"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Paris"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)
	require.True(t, tbl.Has("Lead Departure City"))
	require.Len(t, tbl.Rows, 1)

	row := tbl.Rows[0]
	require.Equal(t, "Paris", row.Value("Lead Departure City"))
	v, ok := row.Get("Notes")
	require.True(t, ok)
	require.Empty(t, v)
	_, ok = row.Get("Nope")
	require.False(t, ok)
	require.Equal(t, map[string]string{"Lead Departure City": "Paris", "F.A.Q.": "", "Notes": ""}, row.Map())
}

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pairs.csv")
	data := "\ufeffLead Departure City;Lead Destination City\nNew York;London\n\"Rio; Brazil\";Lima\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	tbl, err := ReadFile(path, ReadOptions{Delimiter: ';'})
	require.NoError(t, err)
	require.Equal(t, []string{"Lead Departure City", "Lead Destination City"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	require.Equal(t, "Rio; Brazil", tbl.Rows[1].Value("Lead Departure City"))

	require.NoError(t, tbl.Require("Lead Departure City"))
	err = tbl.Require("Lead Departure City", "City", "Country")
	require.ErrorContains(t, err, `"City", "Country"`)
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "notes.txt"), ReadOptions{})
	require.ErrorIs(t, err, ErrUnsupported)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = ReadFile(empty, ReadOptions{})
	require.Error(t, err)

	broken := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(broken, []byte("not a zip"), 0o644))
	_, err = ReadFile(broken, ReadOptions{})
	require.Error(t, err)
}

func TestIsTableFile(t *testing.T) {
	cases := map[string]bool{
		"Source/rome.xlsx":   true,
		"Source/ROME.XLSX":   true,
		"pairs.csv":          true,
		"Source/~$rome.xlsx": false,
		".hidden.csv":        false,
		"notes.txt":          false,
		"rome.xls":           false,
	}
	for path, want := range cases {
		if got := IsTableFile(path); got != want {
			t.Errorf("IsTableFile(%q) = %v, want %v", path, got, want)
		}
	}
}
