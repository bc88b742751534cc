// Package cellvalue defines the raw spreadsheet cell model and normalizes
// cells into the optional text values the kernel is built from.
package cellvalue

import (
	"strconv"
	"time"
)

// Kind is the native type a spreadsheet cell holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindInt
	KindFloat
	KindBool
	KindTime
	KindError
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindError:
		return "error"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Cell is one raw cell as read from a workbook. Only the field matching
// Kind is meaningful.
type Cell struct {
	Kind  Kind
	Text  string // KindText, and the error literal for KindError
	Int   int64
	Float float64
	Bool  bool
	Time  time.Time
}

// Row is one spreadsheet row. Rows may be shorter than the sheet width;
// missing trailing cells are empty.
type Row []Cell

// Empty returns a cell with no value.
func Empty() Cell { return Cell{Kind: KindEmpty} }

// FromText returns a text cell.
func FromText(s string) Cell { return Cell{Kind: KindText, Text: s} }

// FromInt returns a whole-number cell.
func FromInt(i int64) Cell { return Cell{Kind: KindInt, Int: i} }

// FromFloat returns a floating point cell.
func FromFloat(f float64) Cell { return Cell{Kind: KindFloat, Float: f} }

// IsEmpty reports whether the cell holds no value at all.
// The "N/A" sentinel is a value here; it only normalizes to NULL.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// At returns the cell at position i, or an empty cell past the end of the row.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Empty()
	}
	return r[i]
}

// NonEmpty returns the number of cells holding a value.
func (r Row) NonEmpty() int {
	n := 0
	for _, c := range r {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	return r.NonEmpty() == 0
}
