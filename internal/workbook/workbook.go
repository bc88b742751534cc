// Package workbook reads xlsx files into the raw cell model.
//
// Cells keep their native type: numbers stay numbers, dates become times,
// booleans stay booleans. Deciding which of those are acceptable is left to
// the kernel builder.
package workbook

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/cda/internal/cellvalue"
	"github.com/xuri/excelize/v2"
)

// LockFilePrefix marks the owner files spreadsheet applications leave next
// to an open workbook.
const LockFilePrefix = "~$"

// Workbook is an open xlsx file. It implements kernel.Source.
// A Workbook is not safe for concurrent use.
type Workbook struct {
	file     *excelize.File
	date1904 bool
	dates    map[int]bool // style index -> has a date number format
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return newWorkbook(f), nil
}

// OpenReader reads a workbook from r.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return newWorkbook(f), nil
}

func newWorkbook(f *excelize.File) *Workbook {
	w := &Workbook{file: f, dates: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		w.date1904 = *props.Date1904
	}
	return w
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns the sheet titles in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows returns every row of the sheet. Blank rows between data rows are kept
// as empty rows; trailing blank rows are not returned.
func (w *Workbook) Rows(sheet string) ([]cellvalue.Row, error) {
	raw, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	rows := make([]cellvalue.Row, len(raw))
	for i, values := range raw {
		row := make(cellvalue.Row, len(values))
		for j, v := range values {
			c, err := w.cell(sheet, j+1, i+1, v)
			if err != nil {
				return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
			}
			row[j] = c
		}
		rows[i] = row
	}
	return rows, nil
}

// cell types the raw string value of the cell at (col, row), both 1-based.
func (w *Workbook) cell(sheet string, col, row int, raw string) (cellvalue.Cell, error) {
	if raw == "" {
		return cellvalue.Empty(), nil
	}

	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return cellvalue.Cell{}, err
	}
	typ, err := w.file.GetCellType(sheet, ref)
	if err != nil {
		return cellvalue.Cell{}, fmt.Errorf("cell %s: %w", ref, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		return cellvalue.Cell{Kind: cellvalue.KindBool, Bool: raw == "1" || strings.EqualFold(raw, "true"), Text: raw}, nil
	case excelize.CellTypeError:
		return cellvalue.Cell{Kind: cellvalue.KindError, Text: raw}, nil
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return cellvalue.Cell{Kind: cellvalue.KindTime, Time: t, Text: raw}, nil
		}
		return cellvalue.FromText(raw), nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return w.number(sheet, ref, raw)
	default:
		return cellvalue.FromText(raw), nil
	}
}

// number types a numeric cell. Whole numbers become ints, values formatted
// as dates become times, everything else stays a float.
func (w *Workbook) number(sheet, ref, raw string) (cellvalue.Cell, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return cellvalue.FromText(raw), nil
	}

	isDate, err := w.isDate(sheet, ref)
	if err != nil {
		return cellvalue.Cell{}, err
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(f, w.date1904)
		if err != nil {
			return cellvalue.Cell{}, fmt.Errorf("cell %s: %w", ref, err)
		}
		return cellvalue.Cell{Kind: cellvalue.KindTime, Time: t, Text: raw}, nil
	}

	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return cellvalue.FromInt(int64(f)), nil
	}
	return cellvalue.FromFloat(f), nil
}

func (w *Workbook) isDate(sheet, ref string) (bool, error) {
	idx, err := w.file.GetCellStyle(sheet, ref)
	if err != nil {
		return false, fmt.Errorf("cell %s: %w", ref, err)
	}
	if idx == 0 {
		return false, nil
	}
	if v, ok := w.dates[idx]; ok {
		return v, nil
	}

	style, err := w.file.GetStyle(idx)
	if err != nil {
		return false, fmt.Errorf("cell %s: %w", ref, err)
	}
	v := isDateFormat(style.NumFmt, style.CustomNumFmt)
	w.dates[idx] = v
	return v, nil
}

// isDateFormat reports whether a number format displays a date or time.
func isDateFormat(id int, custom *string) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	if custom == nil {
		return false
	}

	// Ignore quoted literals and bracketed sections such as colors.
	var inQuote, inBracket bool
	for _, r := range strings.ToLower(*custom) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case strings.ContainsRune("ydmhs", r):
			return true
		}
	}
	return false
}
