// Package kernel builds the normalized data model ("the kernel") from a
// workbook: picklist categories, entities with their attributes, and the
// license block. A kernel is built once per workbook and only read after.
package kernel

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Sheet names with a fixed meaning. Every other sheet is a picklist.
const (
	SheetEntities   = "Entities"
	SheetAttributes = "Attributes"
	SheetLicense    = "License"
)

// Attribute field names the SQL builder relies on.
const (
	FieldName     = "Name"
	FieldLabel    = "Label"
	FieldDataType = "Data Type"
	FieldDesc     = "Description"
)

// Field is one named value taken from a sheet row.
type Field struct {
	Name  string
	Value pgtype.Text
}

// Fields is an ordered list of fields, in sheet header order.
type Fields []Field

// Get returns the value of the named field.
func (f Fields) Get(name string) (pgtype.Text, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return pgtype.Text{}, false
}

// String returns the named field's text, or "" when absent or NULL.
func (f Fields) String(name string) string {
	v, _ := f.Get(name)
	return v.String
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// Attribute is one column of an entity or picklist table.
type Attribute struct {
	Fields Fields
}

// Name returns the attribute's declared column name.
func (a *Attribute) Name() string {
	return a.Fields.String(FieldName)
}

// DataType returns the attribute's declared type token.
func (a *Attribute) DataType() string {
	return a.Fields.String(FieldDataType)
}

// Entity is a domain object type; it becomes one table.
type Entity struct {
	Name       string
	Fields     Fields
	Attributes []*Attribute
}

// PicklistValue is one row of a picklist value table, keyed by the
// lower-cased sheet field name.
type PicklistValue struct {
	Fields Fields
}

// PicklistCategory is a controlled vocabulary. Its schema comes from the
// catalog, its values from the workbook.
type PicklistCategory struct {
	Name        string
	Label       string
	Description string
	Attributes  []*Attribute
	Values      []PicklistValue
}

// License is the license block of the workbook.
type License struct {
	Version string
	Date    string
	Title   pgtype.Text
	Text    pgtype.Text
}

// Kernel is the normalized model of one workbook.
type Kernel struct {
	Picklists []*PicklistCategory
	Entities  []*Entity
	License   *License

	entities map[string]*Entity
}

// New returns an empty kernel.
func New() *Kernel {
	return &Kernel{entities: make(map[string]*Entity)}
}

// Entity returns the entity with the given name.
func (k *Kernel) Entity(name string) (*Entity, bool) {
	e, ok := k.entities[name]
	return e, ok
}

// addEntity installs an entity. A later row with the same name replaces the
// earlier definition in place, keeping its position.
func (k *Kernel) addEntity(e *Entity) {
	if existing, ok := k.entities[e.Name]; ok {
		*existing = *e
		return
	}
	k.entities[e.Name] = e
	k.Entities = append(k.Entities, e)
}
