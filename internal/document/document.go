// Package document renders a kernel as a YAML document.
//
// The document is built as a yaml.v3 node tree rather than from maps so
// that the key order of the kernel survives: picklists first, then
// entities, then the license. Field names are written exactly as they
// appear in the workbook.
package document

import (
	"bytes"
	"fmt"

	"github.com/JonMunkholm/cda/internal/kernel"
	"github.com/jackc/pgx/v5/pgtype"
	"gopkg.in/yaml.v3"
)

// Top-level keys of the document.
const (
	KeyPicklists  = "Picklist Entities"
	KeyEntities   = kernel.SheetEntities
	KeyLicense    = kernel.SheetLicense
	keyAttributes = kernel.SheetAttributes
	keyValues     = "Values"
)

// Marshal renders k. The License section is omitted when the workbook has none.
func Marshal(k *kernel.Kernel) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Node(k)); err != nil {
		return nil, fmt.Errorf("encode kernel: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode kernel: %w", err)
	}
	return buf.Bytes(), nil
}

// Node returns the document tree of k.
func Node(k *kernel.Kernel) *yaml.Node {
	picklists := mapping()
	for _, pc := range k.Picklists {
		add(picklists, pc.Name, picklistNode(pc))
	}

	entities := mapping()
	for _, e := range k.Entities {
		node := fieldsNode(e.Fields)
		add(node, keyAttributes, attributesNode(e.Attributes))
		add(entities, e.Name, node)
	}

	root := mapping()
	add(root, KeyPicklists, picklists)
	add(root, KeyEntities, entities)
	if k.License != nil {
		add(root, KeyLicense, licenseNode(k.License))
	}
	return root
}

func picklistNode(pc *kernel.PicklistCategory) *yaml.Node {
	values := sequence()
	for _, v := range pc.Values {
		values.Content = append(values.Content, fieldsNode(v.Fields))
	}

	node := mapping()
	add(node, kernel.FieldLabel, str(pc.Label))
	add(node, kernel.FieldDesc, text(pgtype.Text{String: pc.Description, Valid: pc.Description != ""}))
	add(node, keyAttributes, attributesNode(pc.Attributes))
	add(node, keyValues, values)
	return node
}

func attributesNode(attrs []*kernel.Attribute) *yaml.Node {
	seq := sequence()
	for _, a := range attrs {
		seq.Content = append(seq.Content, fieldsNode(a.Fields))
	}
	return seq
}

func licenseNode(l *kernel.License) *yaml.Node {
	node := mapping()
	add(node, "Version", str(l.Version))
	add(node, "Date", str(l.Date))
	add(node, "Title", text(l.Title))
	add(node, "Text", text(l.Text))
	return node
}

func fieldsNode(fields kernel.Fields) *yaml.Node {
	node := mapping()
	for _, f := range fields {
		add(node, f.Name, text(f.Value))
	}
	return node
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func add(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, str(key), value)
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func text(t pgtype.Text) *yaml.Node {
	if !t.Valid {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	return str(t.String)
}
