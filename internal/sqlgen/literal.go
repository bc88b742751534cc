package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// UnsupportedValueError is returned for values that have no SQL literal form.
type UnsupportedValueError struct {
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported value type %T for value %v", e.Value, e.Value)
}

// EscapeString doubles every single quote in s.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// QuoteString returns s as a single-quoted SQL string literal.
func QuoteString(s string) string {
	return "'" + EscapeString(s) + "'"
}

// Literal renders v as a SQL literal: strings quoted, integers bare,
// nil and invalid pgtype.Text as NULL.
func Literal(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return QuoteString(v), nil
	case pgtype.Text:
		if !v.Valid {
			return "NULL", nil
		}
		return QuoteString(v.String), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", &UnsupportedValueError{Value: v}
	}
}
