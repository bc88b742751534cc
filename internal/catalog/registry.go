// Package catalog holds the hand-curated picklist definitions: the canonical
// name, description and value-table schema of every known controlled
// vocabulary. Only picklist values are read from workbooks; their schema
// always comes from here.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Column describes one column of a picklist value table.
type Column struct {
	Name        string // Column name, already lower case
	Label       string
	DataType    string // SQL type token, resolved like any attribute type
	Description string // Empty means no description
}

// Picklist is the fixed definition of one controlled vocabulary.
type Picklist struct {
	SheetTitle  string // Workbook sheet that carries the values: "Language Items"
	Name        string // Canonical name: "Language", "HCP_Type"
	Label       string // Display name: "HCP Type"
	Description string
	Columns     []Column
}

// Catalog is an immutable set of picklist definitions.
// Safe for concurrent reads.
type Catalog struct {
	version string
	byTitle map[string]Picklist
	order   []string
}

// New builds a catalog from definitions.
// Panics if two definitions share a sheet title or canonical name.
func New(version string, defs ...Picklist) *Catalog {
	c := &Catalog{
		version: version,
		byTitle: make(map[string]Picklist, len(defs)),
	}

	names := make(map[string]bool, len(defs))
	for _, def := range defs {
		if _, exists := c.byTitle[def.SheetTitle]; exists {
			panic(fmt.Sprintf("picklist already registered: %s", def.SheetTitle))
		}
		if names[def.Name] {
			panic(fmt.Sprintf("picklist name already registered: %s", def.Name))
		}
		names[def.Name] = true
		c.byTitle[def.SheetTitle] = def
		c.order = append(c.order, def.SheetTitle)
	}

	return c
}

// Version identifies the revision of the definitions.
func (c *Catalog) Version() string {
	return c.version
}

// Lookup returns the picklist for a sheet title.
// The exact sheet title wins; otherwise the label or canonical name is
// matched case-insensitively.
func (c *Catalog) Lookup(title string) (Picklist, bool) {
	if def, ok := c.byTitle[title]; ok {
		return def, true
	}

	want := strings.TrimSpace(title)
	for _, key := range c.order {
		def := c.byTitle[key]
		if strings.EqualFold(def.Label, want) || strings.EqualFold(def.Name, want) {
			return def, true
		}
	}
	return Picklist{}, false
}

// All returns every definition sorted by canonical name.
func (c *Catalog) All() []Picklist {
	result := make([]Picklist, 0, len(c.byTitle))
	for _, def := range c.byTitle {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.byTitle)
}
