package sqlgen

import (
	"strings"

	"github.com/JonMunkholm/cda/internal/kernel"
	"github.com/jackc/pgx/v5/pgtype"
)

// Comment renders the non-NULL fields as "key: value" pairs joined by ", ",
// skipping the excluded field names. Quotes in values are doubled so the
// result can be placed inside a string literal.
func Comment(fields kernel.Fields, exclude ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.Value.Valid || excluded(f.Name, exclude) {
			continue
		}
		parts = append(parts, f.Name+": "+EscapeString(f.Value.String))
	}
	return strings.Join(parts, ", ")
}

func excluded(name string, exclude []string) bool {
	for _, e := range exclude {
		if name == e {
			return true
		}
	}
	return false
}

func textOf(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
