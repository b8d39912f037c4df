// Package query constructs SQL queries using a fluent builder with
// automatic parameter numbering and a view-name to column projection.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap associates view field names with aliased table columns.
type ProjectionMap struct {
	schema string
	table  string
	alias  string
	order  []string
	fields map[string]string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project registers a column under the given view field name.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	p.order = append(p.order, field)
	p.fields[field] = fmt.Sprintf("%s.%s", p.alias, column)
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased table reference for FROM clauses.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the aliased column for a view field name. Unknown
// fields are returned unchanged.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.fields[field]; ok {
		return col
	}
	return field
}

// Columns returns the full projection list in registration order.
func (p *ProjectionMap) Columns() string {
	cols := make([]string, len(p.order))
	for i, field := range p.order {
		cols[i] = p.fields[field]
	}
	return strings.Join(cols, ", ")
}
