package agendasql

import (
	"fmt"
	"strings"
)

// Column is a single column definition: a name and its raw SQL type clause
// (e.g. "INTEGER PRIMARY KEY AUTOINCREMENT").
type Column struct {
	Name string
	Type string
}

// Schema describes a table as plain data. Columns keep their declaration
// order, which is also the default select order. Constraints are raw table
// constraint clauses appended after the columns.
type Schema struct {
	Columns     []Column
	Constraints []string
}

// TableSchema pairs a table name with its schema.
type TableSchema struct {
	Name   string
	Schema Schema
}

// ColumnNames returns the column names in declaration order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the schema declares the named column.
func (s Schema) Has(name string) bool {
	for _, c := range s.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// CreateTableSQL renders the idempotent CREATE TABLE statement for a table.
//
//	CREATE TABLE IF NOT EXISTS users (id INTEGER PRIMARY KEY, manager_id INTEGER, FOREIGN KEY(manager_id) REFERENCES users(id))
//
// An existing table is left untouched even when the schema differs. Remove
// the store file to apply schema changes.
func CreateTableSQL(name string, s Schema) string {
	parts := make([]string, 0, len(s.Columns)+len(s.Constraints))
	for _, c := range s.Columns {
		parts = append(parts, strings.TrimSpace(c.Name+" "+c.Type))
	}
	parts = append(parts, s.Constraints...)
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", name, strings.Join(parts, ", "))
}
