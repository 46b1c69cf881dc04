// Package querybuilder renders small Postgres statements with numbered
// placeholders. It covers the shapes the repositories need and nothing more.
package querybuilder

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// statement accumulates SQL text and its positional arguments.
type statement struct {
	buf  strings.Builder
	args []any
}

func (s *statement) bind(value any) {
	s.args = append(s.args, value)
	s.buf.WriteString("$")
	s.buf.WriteString(strconv.Itoa(len(s.args)))
}

// expr writes raw SQL, binding one argument per '?'. Extra '?' are kept
// verbatim.
func (s *statement) expr(raw string, values []any) {
	next := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && next < len(values) {
			s.bind(values[next])
			next++
			continue
		}
		s.buf.WriteByte(raw[i])
	}
}

func (s *statement) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	s.buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			s.buf.WriteString(" AND ")
		}
		c.render(s)
	}
}

type Condition interface {
	render(s *statement)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func (c compareCondition) render(s *statement) {
	s.buf.WriteString(c.column)
	s.buf.WriteString(c.op)
	s.bind(c.value)
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: " = ", value: value}
}

func Gte(column string, value any) Condition {
	return compareCondition{column: column, op: " >= ", value: value}
}

func Lte(column string, value any) Condition {
	return compareCondition{column: column, op: " <= ", value: value}
}

type anyCondition struct {
	column string
	values []string
}

// AnyOf matches column against a text array bound as a single argument. An
// empty list matches nothing.
func AnyOf(column string, values []string) Condition {
	return anyCondition{column: column, values: values}
}

func (c anyCondition) render(s *statement) {
	if len(c.values) == 0 {
		s.buf.WriteString("1=0")
		return
	}
	s.buf.WriteString(c.column)
	s.buf.WriteString(" = ANY(")
	s.bind(pq.Array(c.values))
	s.buf.WriteString(")")
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) render(s *statement) {
	s.buf.WriteString(c.column)
	s.buf.WriteString(" IS NULL")
}

type exprCondition struct {
	sql  string
	args []any
}

// Expr is a raw predicate using '?' for arguments.
func Expr(sql string, args ...any) Condition {
	return exprCondition{sql: sql, args: args}
}

func (c exprCondition) render(s *statement) {
	s.expr(c.sql, c.args)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, crerr.New("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, crerr.New("select table is required")
	}

	var s statement
	s.buf.WriteString("SELECT ")
	s.buf.WriteString(strings.Join(b.columns, ", "))
	s.buf.WriteString(" FROM ")
	s.buf.WriteString(b.table)
	s.where(b.where)
	if len(b.orderBy) > 0 {
		s.buf.WriteString(" ORDER BY ")
		s.buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		s.buf.WriteString(" LIMIT ")
		s.buf.WriteString(strconv.Itoa(b.limit))
	}
	return s.buf.String(), s.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL such as an ON CONFLICT or RETURNING clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, crerr.New("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, crerr.New("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, crerr.New("insert values are required")
	}

	var s statement
	s.buf.WriteString("INSERT INTO ")
	s.buf.WriteString(b.table)
	s.buf.WriteString(" (")
	s.buf.WriteString(strings.Join(b.columns, ", "))
	s.buf.WriteString(") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, crerr.Newf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			s.buf.WriteString(", ")
		}
		s.buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				s.buf.WriteString(", ")
			}
			s.bind(value)
		}
		s.buf.WriteString(")")
	}
	if b.suffix != "" {
		s.buf.WriteString(" ")
		s.buf.WriteString(b.suffix)
	}
	return s.buf.String(), s.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to render an unfiltered delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, crerr.New("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, crerr.New("delete requires a where clause")
	}

	var s statement
	s.buf.WriteString("DELETE FROM ")
	s.buf.WriteString(b.table)
	s.where(b.where)
	return s.buf.String(), s.args, nil
}
