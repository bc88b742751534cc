package kernel

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/cda/internal/catalog"
	"github.com/JonMunkholm/cda/internal/cellvalue"
	"github.com/JonMunkholm/cda/internal/sheet"
	"github.com/jackc/pgx/v5/pgtype"
)

// Source is a readable workbook.
type Source interface {
	// SheetNames returns the sheet titles in workbook order.
	SheetNames() []string
	// Rows returns every row of a sheet.
	Rows(sheet string) ([]cellvalue.Row, error)
}

// Builder turns workbooks into kernels.
// A Builder holds no per-workbook state and may be shared.
type Builder struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewBuilder creates a Builder that resolves picklist sheets against cat.
func NewBuilder(cat *catalog.Catalog, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{catalog: cat, logger: logger}
}

// Build runs the picklist, entity, attribute and license passes in order.
// Any failure aborts the build; no partial kernel is returned.
func (b *Builder) Build(src Source) (*Kernel, error) {
	names := src.SheetNames()
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, required := range []string{SheetEntities, SheetAttributes} {
		if !present[required] {
			return nil, wrap(required, &MissingSheetError{Sheet: required})
		}
	}

	k := New()

	if err := b.addPicklists(src, names, k); err != nil {
		return nil, err
	}
	if err := b.addEntities(src, k); err != nil {
		return nil, err
	}
	if err := b.addAttributes(src, k); err != nil {
		return nil, err
	}
	if present[SheetLicense] {
		if err := addLicense(src, k); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("kernel built",
		"picklists", len(k.Picklists),
		"entities", len(k.Entities),
		"license", k.License != nil,
	)

	return k, nil
}

func (b *Builder) addPicklists(src Source, names []string, k *Kernel) error {
	installed := make(map[string]string, len(names))

	for _, title := range names {
		if title == SheetEntities || title == SheetAttributes || title == SheetLicense {
			continue
		}

		def, ok := b.catalog.Lookup(title)
		if !ok {
			return wrap(title, &UnknownPicklistError{Sheet: title})
		}
		if first, dup := installed[def.Name]; dup {
			return wrap(title, &DuplicatePicklistError{Sheet: title, Picklist: def.Name, First: first})
		}
		installed[def.Name] = title

		pc := newPicklistCategory(def)
		rows, err := src.Rows(title)
		if err != nil {
			return wrap(title, err)
		}

		add := picklistValueAdder(def)
		if _, err := sheet.Scan(rows, def.Name, pc, add); err != nil {
			return wrap(title, err)
		}

		k.Picklists = append(k.Picklists, pc)
	}
	return nil
}

func newPicklistCategory(def catalog.Picklist) *PicklistCategory {
	pc := &PicklistCategory{
		Name:        def.Name,
		Label:       def.Label,
		Description: def.Description,
		Attributes:  make([]*Attribute, 0, len(def.Columns)),
		Values:      []PicklistValue{},
	}
	for _, col := range def.Columns {
		pc.Attributes = append(pc.Attributes, &Attribute{Fields: Fields{
			{Name: FieldName, Value: text(col.Name)},
			{Name: FieldLabel, Value: text(col.Label)},
			{Name: FieldDataType, Value: text(col.DataType)},
			{Name: FieldDesc, Value: text(col.Description)},
		}})
	}
	return pc
}

// picklistValueAdder returns the scan handler for one picklist. Value keys
// are the lower-cased sheet headers; a header naming a column by its label
// ("Specialty Group Mapping") or with spaces for underscores is keyed by the
// column name.
func picklistValueAdder(def catalog.Picklist) sheet.Handler[*PicklistCategory] {
	key := func(header string) string {
		lower := strings.ToLower(strings.TrimSpace(header))
		underscored := strings.ReplaceAll(lower, " ", "_")
		for _, col := range def.Columns {
			if col.Name == lower || col.Name == underscored || strings.EqualFold(col.Label, strings.TrimSpace(header)) {
				return col.Name
			}
		}
		return lower
	}

	return func(pc *PicklistCategory, fields []string, row cellvalue.Row, _ string) (*PicklistCategory, error) {
		values, err := rowFields(fields, row, 0, key)
		if err != nil {
			return pc, err
		}
		pc.Values = append(pc.Values, PicklistValue{Fields: values})
		return pc, nil
	}
}

func (b *Builder) addEntities(src Source, k *Kernel) error {
	rows, err := src.Rows(SheetEntities)
	if err != nil {
		return wrap(SheetEntities, err)
	}

	_, err = sheet.Scan(rows, SheetEntities, k, b.addEntity)
	return wrap(SheetEntities, err)
}

func (b *Builder) addEntity(k *Kernel, fields []string, row cellvalue.Row, _ string) (*Kernel, error) {
	key, err := cellvalue.Normalize(row.At(0))
	if err != nil {
		return k, err
	}
	if !key.Valid || key.String == "" {
		b.logger.Warn("entity row without a name skipped", "sheet", SheetEntities)
		return k, nil
	}

	values, err := rowFields(fields, row, 1, nil)
	if err != nil {
		return k, err
	}

	k.addEntity(&Entity{Name: key.String, Fields: values})
	return k, nil
}

func (b *Builder) addAttributes(src Source, k *Kernel) error {
	for _, e := range k.Entities {
		e.Attributes = []*Attribute{}
	}

	rows, err := src.Rows(SheetAttributes)
	if err != nil {
		return wrap(SheetAttributes, err)
	}

	_, err = sheet.Scan(rows, SheetAttributes, k, b.addAttribute)
	return wrap(SheetAttributes, err)
}

func (b *Builder) addAttribute(k *Kernel, fields []string, row cellvalue.Row, _ string) (*Kernel, error) {
	owner, err := cellvalue.Normalize(row.At(0))
	if err != nil {
		return k, err
	}

	e, ok := k.Entity(owner.String)
	if !owner.Valid || !ok {
		attr, _ := cellvalue.NormalizeString(row.At(1))
		b.logger.Warn("attribute references unknown entity, dropped",
			"entity", owner.String,
			"attribute", attr,
		)
		return k, nil
	}

	values, err := rowFields(fields, row, 1, nil)
	if err != nil {
		return k, err
	}

	e.Attributes = append(e.Attributes, &Attribute{Fields: values})
	return k, nil
}

// rowFields pairs fields[from:] with row cells at the same positions.
// Cells missing from a short row are NULL. rename, when set, maps field names.
func rowFields(fields []string, row cellvalue.Row, from int, rename func(string) string) (Fields, error) {
	if from > len(fields) {
		from = len(fields)
	}

	out := make(Fields, 0, len(fields)-from)
	for i := from; i < len(fields); i++ {
		v, err := cellvalue.Normalize(row.At(i))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fields[i], err)
		}
		name := fields[i]
		if rename != nil {
			name = rename(name)
		}
		out = append(out, Field{Name: name, Value: v})
	}
	return out, nil
}

func text(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}
