// Package sqlgen renders a kernel as a PostgreSQL script: one
// DROP/CREATE/COMMENT block per entity table and one
// DROP/CREATE/COMMENT/INSERT block per picklist table.
//
// The output is a pure function of the kernel. Picklist INSERT columns and
// values are sorted by field name so the script does not depend on the
// column order of the source sheet.
package sqlgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JonMunkholm/cda/internal/kernel"
	"github.com/JonMunkholm/cda/internal/keywords"
	"github.com/JonMunkholm/cda/internal/sqltype"
)

// PicklistTablePrefix prefixes the table name of every picklist.
const PicklistTablePrefix = "picklist_"

const (
	statementSep = "\n;\n"
	columnIndent = "    "
)

// ColumnMismatchError is returned when a picklist value row carries a field
// that is not a column of the picklist table.
type ColumnMismatchError struct {
	Table string
	Field string
}

func (e *ColumnMismatchError) Error() string {
	return fmt.Sprintf("table %s: value field %q is not a column", e.Table, e.Field)
}

// Builder renders kernels. It only reads its resolver and keyword set and
// may be shared between goroutines.
type Builder struct {
	types    *sqltype.Resolver
	keywords *keywords.Set
}

// NewBuilder creates a Builder.
func NewBuilder(types *sqltype.Resolver, kw *keywords.Set) *Builder {
	return &Builder{types: types, keywords: kw}
}

// Build renders the whole script.
func (b *Builder) Build(k *kernel.Kernel) (string, error) {
	var sb strings.Builder

	for _, e := range k.Entities {
		block, err := b.entityBlock(e)
		if err != nil {
			return "", err
		}
		sb.WriteString(block)
	}

	for _, pc := range k.Picklists {
		block, err := b.picklistBlock(pc)
		if err != nil {
			return "", err
		}
		sb.WriteString(block)
	}

	return sb.String(), nil
}

// TableName returns the escaped table name of an entity.
func (b *Builder) TableName(e *kernel.Entity) string {
	return b.keywords.Escape(strings.ToLower(e.Name))
}

// PicklistTableName returns the escaped table name of a picklist.
func (b *Builder) PicklistTableName(pc *kernel.PicklistCategory) string {
	return b.keywords.Escape(PicklistTablePrefix + strings.ToLower(pc.Name))
}

func (b *Builder) entityBlock(e *kernel.Entity) (string, error) {
	table := strings.ToLower(e.Name)
	stmts, err := b.tableStatements(table, b.TableName(e), Comment(e.Fields), e.Attributes)
	if err != nil {
		return "", err
	}
	return block(stmts), nil
}

func (b *Builder) picklistBlock(pc *kernel.PicklistCategory) (string, error) {
	table := PicklistTablePrefix + strings.ToLower(pc.Name)
	name := b.PicklistTableName(pc)

	comment := Comment(kernel.Fields{
		{Name: kernel.FieldLabel, Value: textOf(pc.Label)},
		{Name: kernel.FieldDesc, Value: textOf(pc.Description)},
	})

	stmts, err := b.tableStatements(table, name, comment, pc.Attributes)
	if err != nil {
		return "", err
	}

	if len(pc.Values) > 0 {
		insert, err := b.insertValues(name, pc)
		if err != nil {
			return "", err
		}
		stmts = append(stmts, insert)
	}

	return block(stmts), nil
}

// tableStatements renders DROP, CREATE, COMMENT ON TABLE and the column
// comments. table is the raw lower-case name used for type lookups, name
// the escaped one used in SQL.
func (b *Builder) tableStatements(table, name, comment string, attrs []*kernel.Attribute) ([]string, error) {
	columns := make([]string, 0, len(attrs))
	comments := make([]string, 0, len(attrs))

	for i, attr := range attrs {
		col := strings.ToLower(attr.Name())
		if col == "" {
			return nil, fmt.Errorf("table %s: attribute %d has no name", table, i+1)
		}

		sqlType, err := b.types.Resolve(table, col, attr.DataType())
		if err != nil {
			return nil, fmt.Errorf("table %s column %s: %w", table, col, err)
		}

		escaped := b.keywords.Escape(col)
		columns = append(columns, escaped+" "+sqlType)
		comments = append(comments, fmt.Sprintf("COMMENT ON COLUMN %s.%s IS '%s'",
			name, escaped, Comment(attr.Fields, kernel.FieldName, kernel.FieldDataType)))
	}

	stmts := []string{
		"DROP TABLE IF EXISTS " + name,
		fmt.Sprintf("CREATE TABLE %s (\n%s%s\n)", name, columnIndent, strings.Join(columns, ",\n"+columnIndent)),
		fmt.Sprintf("COMMENT ON TABLE %s IS '%s'", name, comment),
	}
	if len(comments) > 0 {
		stmts = append(stmts, strings.Join(comments, statementSep))
	}
	return stmts, nil
}

// insertValues renders one INSERT for every value row of a picklist.
func (b *Builder) insertValues(name string, pc *kernel.PicklistCategory) (string, error) {
	columns := make([]string, 0, len(pc.Attributes))
	known := make(map[string]bool, len(pc.Attributes))
	for _, attr := range pc.Attributes {
		col := strings.ToLower(attr.Name())
		columns = append(columns, col)
		known[col] = true
	}
	sort.Strings(columns)

	escaped := make([]string, len(columns))
	for i, col := range columns {
		escaped[i] = b.keywords.Escape(col)
	}

	rows := make([]string, 0, len(pc.Values))
	for _, v := range pc.Values {
		for _, f := range v.Fields {
			if !known[f.Name] {
				return "", &ColumnMismatchError{Table: name, Field: f.Name}
			}
		}

		literals := make([]string, len(columns))
		for i, col := range columns {
			value, _ := v.Fields.Get(col)
			lit, err := Literal(value)
			if err != nil {
				return "", fmt.Errorf("table %s column %s: %w", name, col, err)
			}
			literals[i] = lit
		}
		rows = append(rows, "("+strings.Join(literals, ", ")+")")
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES\n%s%s",
		name, strings.Join(escaped, ", "), columnIndent, strings.Join(rows, ",\n"+columnIndent)), nil
}

// block joins statements and terminates the block with a blank line.
func block(stmts []string) string {
	return strings.Join(stmts, statementSep) + statementSep + "\n"
}
