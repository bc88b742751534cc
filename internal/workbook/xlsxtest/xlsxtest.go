// Package xlsxtest builds small xlsx workbooks for tests.
package xlsxtest

import (
	"os"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet. A nil row leaves the spreadsheet row empty.
type Sheet struct {
	Name string
	Rows [][]any
}

// Build returns the xlsx bytes of a workbook with the given sheets, in order.
func Build(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("new sheet %q: %v", s.Name, err)
		}

		for r, row := range s.Rows {
			if row == nil {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(s.Name, ref, &row); err != nil {
				t.Fatalf("write sheet %q row %d: %v", s.Name, r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// Write stores the workbook at path.
func Write(t testing.TB, path string, sheets ...Sheet) {
	t.Helper()

	if err := os.WriteFile(path, Build(t, sheets...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Model returns the sheets of a small but complete workbook: one entity
// with two attributes, the Language picklist and a license.
func Model() []Sheet {
	return []Sheet{
		{Name: "Language Items", Rows: [][]any{
			{"Name", "Label", "Direction"},
			{"en", "English", "ltr"},
			{"ar", "Arabic", "rtl"},
		}},
		{Name: "Entities", Rows: [][]any{
			{"Name", "Label", "Description"},
			{"hcp", "HCP", "Healthcare professional"},
		}},
		{Name: "Attributes", Rows: [][]any{
			{"Entity", "Name", "Label", "Data Type", "Description"},
			{"hcp", "name", "Name", "Text 40", "N/A"},
			{"hcp", "language", "Language", "Picklist", "Preferred language"},
		}},
		{Name: "License", Rows: [][]any{
			{"License, 1.0, 2024-01-01"},
			{"CC BY 4.0"},
			{"Free to share"},
		}},
	}
}
