package cellvalue

// normalize.go turns raw cells into the nullable text values stored in the
// kernel.
//
// The type system is closed on purpose: the data model only carries text and
// whole numbers. Floats, dates, booleans and error literals are rejected so a
// malformed workbook fails loudly instead of producing odd strings.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// NotAvailable is the literal that marks a deliberately empty cell.
const NotAvailable = "N/A"

// UnsupportedTypeError is returned for cells whose native type the data
// model does not accept.
type UnsupportedTypeError struct {
	Kind  Kind
	Value string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported cell type %s (value %q)", e.Kind, e.Value)
}

// Normalize converts a cell to an optional string.
// Returns invalid (NULL) for empty cells and the N/A sentinel (surrounding
// blanks ignored), the trimmed
// text for text cells and the decimal form for whole numbers.
func Normalize(c Cell) (pgtype.Text, error) {
	switch c.Kind {
	case KindEmpty:
		return pgtype.Text{Valid: false}, nil
	case KindText:
		text := strings.TrimSpace(c.Text)
		if text == NotAvailable {
			return pgtype.Text{Valid: false}, nil
		}
		return pgtype.Text{String: text, Valid: true}, nil
	case KindInt:
		return pgtype.Text{String: strconv.FormatInt(c.Int, 10), Valid: true}, nil
	default:
		return pgtype.Text{}, &UnsupportedTypeError{Kind: c.Kind, Value: display(c)}
	}
}

// NormalizeString is Normalize for callers that want a plain string.
// NULL becomes "".
func NormalizeString(c Cell) (string, error) {
	v, err := Normalize(c)
	if err != nil {
		return "", err
	}
	return v.String, nil
}

// display renders a cell for error messages.
func display(c Cell) string {
	switch c.Kind {
	case KindFloat:
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(c.Bool)
	case KindTime:
		return c.Time.Format("2006-01-02T15:04:05")
	default:
		return c.Text
	}
}
