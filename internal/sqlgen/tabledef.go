package sqlgen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/andrewkroh/go-agenda/agendasql"
)

// TableDef is a resolved table ready for code generation.
type TableDef struct {
	Name       string
	Comment    string
	Schema     agendasql.Schema
	References []string // tables referenced by fk columns, in column order
}

// NewTableDef converts a table configuration into a TableDef. Each fk
// column adds a FOREIGN KEY constraint after the declared constraints.
func NewTableDef(tc *TableConfig) *TableDef {
	td := &TableDef{
		Name:    tc.Name,
		Comment: tc.Comment,
		Schema: agendasql.Schema{
			Columns:     make([]agendasql.Column, 0, len(tc.Columns)),
			Constraints: append(make([]string, 0, len(tc.Constraints)), tc.Constraints...),
		},
	}

	seen := map[string]bool{}
	for _, col := range tc.Columns {
		td.Schema.Columns = append(td.Schema.Columns, agendasql.Column{Name: col.Name, Type: col.Type})
		if col.FK == "" {
			continue
		}
		td.Schema.Constraints = append(td.Schema.Constraints, foreignKey(col))
		if !seen[col.FK] {
			seen[col.FK] = true
			td.References = append(td.References, col.FK)
		}
	}
	return td
}

func foreignKey(col ColumnConfig) string {
	return fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(id)", col.Name, col.FK)
}

// GoName converts a SQL identifier (e.g. "sessions_speakers") to an
// exported Go identifier (e.g. "SessionsSpeakers").
func GoName(s string) string {
	var b strings.Builder
	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == '.' }) {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}
