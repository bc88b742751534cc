package sqlgen

// validate.go checks picklist values against the SQL types of their columns
// before the script reaches a database.
//
// Findings are advisory: the script is still generated, and the database
// will reject the INSERT if a value really does not fit.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/JonMunkholm/cda/internal/kernel"
)

var widthType = regexp.MustCompile(`^(?i)(?:CHAR|VARCHAR)\((\d+)\)$`)

// ValidationError describes one picklist value that does not fit its column.
type ValidationError struct {
	Table   string
	Column  string
	Row     int // 1-based position in the picklist's values
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s.%s row %d: %s", e.Table, e.Column, e.Row, e.Message)
}

// ValidateValues checks every value of pc against its column type.
func ValidateValues(pc *kernel.PicklistCategory) []ValidationError {
	table := PicklistTablePrefix + strings.ToLower(pc.Name)

	types := make(map[string]string, len(pc.Attributes))
	for _, attr := range pc.Attributes {
		types[strings.ToLower(attr.Name())] = attr.DataType()
	}

	var errs []ValidationError
	for i, v := range pc.Values {
		for _, f := range v.Fields {
			if !f.Value.Valid {
				continue
			}
			sqlType, ok := types[f.Name]
			if !ok {
				continue
			}
			if msg := checkValue(f.Value.String, sqlType); msg != "" {
				errs = append(errs, ValidationError{
					Table:   table,
					Column:  f.Name,
					Row:     i + 1,
					Value:   f.Value.String,
					Message: msg,
				})
			}
		}
	}
	return errs
}

// checkValue returns a message when value does not fit sqlType, "" otherwise.
func checkValue(value, sqlType string) string {
	if m := widthType.FindStringSubmatch(sqlType); m != nil {
		width, _ := strconv.Atoi(m[1])
		if n := utf8.RuneCountInString(value); n > width {
			return fmt.Sprintf("value %q has %d characters, %s allows %d", value, n, sqlType, width)
		}
		return ""
	}

	if strings.EqualFold(sqlType, "SMALLINT") {
		if _, err := strconv.ParseInt(value, 10, 16); err != nil {
			return fmt.Sprintf("value %q is not a SMALLINT", value)
		}
	}
	return ""
}
