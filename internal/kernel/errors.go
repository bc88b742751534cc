package kernel

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/cda/internal/cellvalue"
	"github.com/JonMunkholm/cda/internal/sheet"
)

// ErrorKind is a coarse classification of build failures. Every kind is
// fatal for the workbook being built.
type ErrorKind string

const (
	// KindStructural covers layout problems: missing sheets, missing header
	// rows, unknown picklist sheets, malformed license cells.
	KindStructural ErrorKind = "structural"
	// KindType covers cell values of a type the model does not accept.
	KindType ErrorKind = "type"
)

// Error wraps a build failure with the sheet and row it came from.
type Error struct {
	Kind  ErrorKind
	Sheet string
	Row   int // 1-based; 0 when not tied to a row
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s error in sheet %q", e.Kind, e.Sheet)
	if e.Row > 0 {
		base += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a kernel Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ke *Error
	if errors.As(err, &ke) {
		return ke.Kind == kind
	}
	return false
}

// UnknownPicklistError is returned for a sheet that is neither a fixed
// sheet nor a known picklist.
type UnknownPicklistError struct {
	Sheet string
}

func (e *UnknownPicklistError) Error() string {
	return fmt.Sprintf("unknown picklist sheet %q", e.Sheet)
}

// DuplicatePicklistError is returned when two sheets resolve to the same
// picklist, e.g. "Language Items" and "Language".
type DuplicatePicklistError struct {
	Sheet    string
	Picklist string
	First    string // sheet that installed the picklist first
}

func (e *DuplicatePicklistError) Error() string {
	return fmt.Sprintf("sheet %q repeats picklist %s already read from sheet %q", e.Sheet, e.Picklist, e.First)
}

// MissingSheetError is returned when a required sheet is absent.
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("required sheet %q not found", e.Sheet)
}

// LicenseFormatError is returned when the license header cell cannot be
// split into label, version and date.
type LicenseFormatError struct {
	Value string
}

func (e *LicenseFormatError) Error() string {
	return fmt.Sprintf("license cell %q is not \"<label>, <version>, <date>\"", e.Value)
}

// wrap classifies err and attaches the sheet name.
func wrap(sheetName string, err error) error {
	if err == nil {
		return nil
	}

	kind := KindStructural
	var typeErr *cellvalue.UnsupportedTypeError
	if errors.As(err, &typeErr) {
		kind = KindType
	}

	row := 0
	var rowErr *sheet.RowError
	if errors.As(err, &rowErr) {
		row = rowErr.Row
		err = rowErr.Err
	}

	return &Error{Kind: kind, Sheet: sheetName, Row: row, Err: err}
}
