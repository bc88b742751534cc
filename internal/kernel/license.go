package kernel

import (
	"strings"

	"github.com/JonMunkholm/cda/internal/cellvalue"
	"github.com/jackc/pgx/v5/pgtype"
)

// addLicense reads the license block from the first column of the License
// sheet: A1 "<label>, <version>, <date>", A2 the title, A3 the text.
func addLicense(src Source, k *Kernel) error {
	rows, err := src.Rows(SheetLicense)
	if err != nil {
		return wrap(SheetLicense, err)
	}

	cell := func(i int) (pgtype.Text, error) {
		if i >= len(rows) {
			return pgtype.Text{}, nil
		}
		return cellvalue.Normalize(rows[i].At(0))
	}

	header, err := cell(0)
	if err != nil {
		return wrap(SheetLicense, err)
	}
	version, date, err := ParseLicenseHeader(header.String)
	if err != nil {
		return wrap(SheetLicense, err)
	}

	title, err := cell(1)
	if err != nil {
		return wrap(SheetLicense, err)
	}
	body, err := cell(2)
	if err != nil {
		return wrap(SheetLicense, err)
	}

	k.License = &License{
		Version: version,
		Date:    date,
		Title:   title,
		Text:    body,
	}
	return nil
}

// ParseLicenseHeader splits "<label>, <version>, <date>" into version and
// date. Tokens after the version are trimmed and rejoined with commas, so a
// date written as "Jan 1, 2023" survives.
func ParseLicenseHeader(s string) (version, date string, err error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return "", "", &LicenseFormatError{Value: s}
	}

	rest := parts[2:]
	for i := range rest {
		rest[i] = strings.TrimSpace(rest[i])
	}

	return strings.TrimSpace(parts[1]), strings.Join(rest, ","), nil
}
