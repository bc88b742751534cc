// Package sqltype maps declared attribute type tokens to concrete SQL column
// types.
//
// Most tokens ("Boolean", "Text 40") resolve directly. The picklist tokens
// are contextual: the same "Picklist" means CHAR(2) for hcp.country and
// VARCHAR(6) for hcp.state, so they resolve through the compound key
// "<table>.<column>.<token>".
package sqltype

import (
	"fmt"
	"strings"
)

// Contextual type tokens.
const (
	Picklist           = "Picklist"
	MultivaluePicklist = "Multivalue Picklist"
)

// UnresolvedTypeError is returned when a type token (or compound key) has
// no mapping. It is a schema authoring mistake, not a data error.
type UnresolvedTypeError struct {
	Key string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("no SQL type registered for %q", e.Key)
}

// Resolver resolves type tokens against a fixed mapping.
// Safe for concurrent use.
type Resolver struct {
	dialect string
	version string
	types   map[string]string
}

// NewResolver creates a Resolver over a copy of types.
func NewResolver(dialect, version string, types map[string]string) *Resolver {
	m := make(map[string]string, len(types))
	for k, v := range types {
		m[k] = v
	}
	return &Resolver{dialect: dialect, version: version, types: m}
}

// Dialect returns the SQL dialect the mapping targets.
func (r *Resolver) Dialect() string { return r.dialect }

// Version returns the mapping revision.
func (r *Resolver) Version() string { return r.version }

// IsContextual reports whether token needs the table and column to resolve.
func IsContextual(token string) bool {
	return token == Picklist || token == MultivaluePicklist
}

// Key returns the lookup key for a token in the context of table.column.
func Key(table, column, token string) string {
	if IsContextual(token) {
		return table + "." + strings.ToLower(column) + "." + token
	}
	return token
}

// Resolve returns the SQL type for token declared on table.column.
func (r *Resolver) Resolve(table, column, token string) (string, error) {
	key := Key(table, column, token)
	sqlType, ok := r.types[key]
	if !ok {
		return "", &UnresolvedTypeError{Key: key}
	}
	return sqlType, nil
}
