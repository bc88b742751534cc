// Package sheet locates the sections of a spreadsheet and feeds their data
// rows to a caller-supplied handler.
//
// A sheet is a sequence of sections stacked on top of each other:
//
//	Language                 <- marker row: exactly one non-empty cell
//	Name | Label | Direction <- field row: names for the rows below
//	en   | English | ltr     <- data rows until a fully blank row
//
// When the first row is not a marker it is treated as the field row, so a
// plain table with a header works without a marker.
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/cda/internal/cellvalue"
)

// ErrMissingHeader is returned when a data row is reached before any field
// row has been established.
var ErrMissingHeader = errors.New("no row defining the fields found before data")

// Handler processes one data row. fields holds the field names of the
// current section and key is the context key passed to Scan. The returned
// accumulator replaces acc for the next row.
type Handler[A any] func(acc A, fields []string, row cellvalue.Row, key string) (A, error)

// RowError wraps an error raised while scanning a specific row.
type RowError struct {
	Row int // 1-based spreadsheet row number
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Scan walks rows once and calls h for every data row.
// Scanning stops at the first fully blank data row.
func Scan[A any](rows []cellvalue.Row, key string, acc A, h Handler[A]) (A, error) {
	marker := -1
	var fields []string
	haveFields := false

	for i, row := range rows {
		if row.NonEmpty() == 1 {
			marker = i
			continue
		}

		if i == marker+1 {
			names, err := FieldNames(row)
			if err != nil {
				return acc, &RowError{Row: i + 1, Err: err}
			}
			fields = names
			haveFields = true
			continue
		}

		if !haveFields {
			return acc, &RowError{Row: i + 1, Err: ErrMissingHeader}
		}

		if row.IsBlank() {
			break
		}

		next, err := h(acc, fields, row, key)
		if err != nil {
			return acc, &RowError{Row: i + 1, Err: err}
		}
		acc = next
	}

	return acc, nil
}

// FieldNames returns the values of the non-empty cells of a field row, in
// order. Text is trimmed but otherwise kept as written, so an "N/A" header
// still names its column.
func FieldNames(row cellvalue.Row) ([]string, error) {
	names := make([]string, 0, len(row))
	for _, c := range row {
		if c.IsEmpty() {
			continue
		}
		if c.Kind == cellvalue.KindText {
			names = append(names, strings.TrimSpace(c.Text))
			continue
		}
		v, err := cellvalue.Normalize(c)
		if err != nil {
			return nil, fmt.Errorf("field name: %w", err)
		}
		names = append(names, v.String)
	}
	return names, nil
}
