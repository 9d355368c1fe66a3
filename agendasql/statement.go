package agendasql

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Record maps column names to values. It is both the item passed to Insert
// and Update and the row type returned by Select.
type Record map[string]Value

// Get returns the value stored under column, or Null when absent.
func (r Record) Get(column string) Value {
	if r == nil {
		return Null()
	}
	return r[column]
}

// Join is a single join clause rendered as
// "JOIN <Right> ON <Left>.<LeftColumn> = <Right>.<RightColumn>". Joins are
// applied in order, so Left may name a table introduced by an earlier join.
type Join struct {
	Left        string
	Right       string
	LeftColumn  string
	RightColumn string
}

// On builds a Join between two table handles.
func On(left, right *Table, leftColumn, rightColumn string) Join {
	return Join{
		Left:        left.Name(),
		Right:       right.Name(),
		LeftColumn:  leftColumn,
		RightColumn: rightColumn,
	}
}

type condOp int

const (
	opEq condOp = iota
	opIn
	opNotIn
)

// Cond is one WHERE condition. Conditions are always combined with AND.
type Cond struct {
	column string
	op     condOp
	values []Value
}

// Eq matches rows where column equals v.
func Eq(column string, v Value) Cond {
	return Cond{column: column, op: opEq, values: []Value{v}}
}

// In matches rows where column is one of values.
func In(column string, values ...Value) Cond {
	return Cond{column: column, op: opIn, values: values}
}

// NotIn matches rows where column is none of values.
func NotIn(column string, values ...Value) Cond {
	return Cond{column: column, op: opNotIn, values: values}
}

// Query selects rows from a table. A nil Columns selects every schema
// column of the table.
type Query struct {
	Columns []string
	Joins   []Join
	Where   []Cond
}

// Statement is a rendered SQL statement with its bound arguments.
type Statement struct {
	// SQL uses "?" placeholders for every value.
	SQL string

	text string
	args []Value // encoded
}

// String returns the statement with encoded values embedded as literals.
func (s Statement) String() string { return s.text }

// Args returns the driver arguments for the placeholders in SQL. Each is
// the value the store would read from the embedded literal.
func (s Statement) Args() []any {
	args := make([]any, len(s.args))
	for i, v := range s.args {
		args[i] = Decode(v).Arg()
	}
	return args
}

type stmtBuilder struct {
	sql  strings.Builder
	text strings.Builder
	args []Value
}

func (b *stmtBuilder) raw(s string) {
	b.sql.WriteString(s)
	b.text.WriteString(s)
}

func (b *stmtBuilder) value(v Value) {
	enc := Encode(v)
	b.sql.WriteString("?")
	b.text.WriteString(literal(enc))
	b.args = append(b.args, enc)
}

func (b *stmtBuilder) list(values []Value) {
	b.raw("(")
	for i, v := range values {
		if i > 0 {
			b.raw(", ")
		}
		b.value(v)
	}
	b.raw(")")
}

func (b *stmtBuilder) where(conds []Cond) {
	if len(conds) == 0 {
		return
	}
	b.raw(" WHERE ")
	for i, c := range conds {
		if i > 0 {
			b.raw(" AND ")
		}
		switch c.op {
		case opIn:
			b.raw(c.column + " IN ")
			b.list(c.values)
		case opNotIn:
			b.raw(c.column + " NOT IN ")
			b.list(c.values)
		default:
			b.raw(c.column + " = ")
			b.value(c.values[0])
		}
	}
}

func (b *stmtBuilder) statement() Statement {
	return Statement{SQL: b.sql.String(), text: b.text.String(), args: b.args}
}

// qualify prefixes a bare column name with its table.
func qualify(table, column string) string {
	if strings.Contains(column, ".") {
		return column
	}
	return table + "." + column
}

// selectStatement renders
//
//	SELECT t.a, t.b FROM t [JOIN u ON t.x = u.y ...] [WHERE a = ? AND b IN (?, ?)]
func selectStatement(table string, columns []string, q Query) Statement {
	var b stmtBuilder

	qualified := make([]string, len(columns))
	for i, c := range columns {
		qualified[i] = qualify(table, c)
	}
	b.raw(fmt.Sprintf("SELECT %s FROM %s", strings.Join(qualified, ", "), table))

	for _, j := range q.Joins {
		b.raw(fmt.Sprintf(" JOIN %s ON %s.%s = %s.%s", j.Right, j.Left, j.LeftColumn, j.Right, j.RightColumn))
	}

	b.where(q.Where)
	return b.statement()
}

// insertStatement renders "INSERT INTO t (a, b) VALUES (?, ?)" with columns
// in schema order.
func insertStatement(table string, s Schema, item Record) (Statement, error) {
	if err := checkColumns(s, item); err != nil {
		return Statement{}, err
	}

	var b stmtBuilder
	var columns []string
	var values []Value
	for _, c := range s.Columns {
		if v, ok := item[c.Name]; ok {
			columns = append(columns, c.Name)
			values = append(values, v)
		}
	}

	if len(columns) == 0 {
		b.raw(fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", table))
		return b.statement(), nil
	}

	b.raw(fmt.Sprintf("INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", ")))
	b.list(values)
	return b.statement(), nil
}

// updateStatement renders "UPDATE t SET a = ?, b = ? WHERE c = ? AND d = ?".
// The WHERE clause only supports equality.
func updateStatement(table string, s Schema, values, where Record) (Statement, error) {
	if len(values) == 0 {
		return Statement{}, errors.New("update has no values to set")
	}
	if len(where) == 0 {
		return Statement{}, errors.New("update has no conditions")
	}
	if err := checkColumns(s, values); err != nil {
		return Statement{}, err
	}
	if err := checkColumns(s, where); err != nil {
		return Statement{}, err
	}

	var b stmtBuilder
	b.raw(fmt.Sprintf("UPDATE %s SET ", table))
	first := true
	for _, c := range s.Columns {
		v, ok := values[c.Name]
		if !ok {
			continue
		}
		if !first {
			b.raw(", ")
		}
		first = false
		b.raw(c.Name + " = ")
		b.value(v)
	}

	var conds []Cond
	for _, c := range s.Columns {
		if v, ok := where[c.Name]; ok {
			conds = append(conds, Eq(c.Name, v))
		}
	}
	b.where(conds)
	return b.statement(), nil
}

// checkColumns rejects record keys the schema does not declare.
func checkColumns(s Schema, r Record) error {
	var unknown []string
	for k := range r {
		if !s.Has(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown column(s): %s", strings.Join(unknown, ", "))
}
