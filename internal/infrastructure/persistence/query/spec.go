// Package query provides a structured query specification that repositories
// build conditionally and render to a single parameterized SQL statement.
// Filter values never reach the SQL text; they travel as bound arguments.
package query

import (
	"fmt"
	"strings"
)

// Spec accumulates the parts of a read query: joins, predicates with bound
// arguments, grouping and ordering. Render it once with SQL().
type Spec struct {
	table      string
	columns    []string
	joins      []string
	joinArgs   []any
	predicates []string
	args       []any
	groupBy    string
	orderBy    string
	limit      int
}

// Select starts a new specification over the given table.
func Select(table string, columns ...string) *Spec {
	return &Spec{
		table:   table,
		columns: columns,
	}
}

// Join appends a join clause; use ? placeholders for any bound values.
func (s *Spec) Join(clause string, args ...any) *Spec {
	s.joins = append(s.joins, clause)
	s.joinArgs = append(s.joinArgs, args...)
	return s
}

// Where appends a predicate; expr must use ? placeholders for every value.
func (s *Spec) Where(expr string, args ...any) *Spec {
	s.predicates = append(s.predicates, expr)
	s.args = append(s.args, args...)
	return s
}

// GroupBy sets the grouping expression.
func (s *Spec) GroupBy(expr string) *Spec {
	s.groupBy = expr
	return s
}

// OrderBy sets the ordering expression.
func (s *Spec) OrderBy(expr string) *Spec {
	s.orderBy = expr
	return s
}

// Limit caps the number of returned rows; zero means no limit.
func (s *Spec) Limit(n int) *Spec {
	s.limit = n
	return s
}

// SQL renders the specification to one SQL string plus its bound arguments.
func (s *Spec) SQL() (string, []any) {
	var b strings.Builder

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(s.table)

	for _, join := range s.joins {
		b.WriteString(" ")
		b.WriteString(join)
	}

	if len(s.predicates) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(s.predicates, " AND "))
	}

	if s.groupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(s.groupBy)
	}

	if s.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(s.orderBy)
	}

	if s.limit > 0 {
		b.WriteString(fmt.Sprintf(" LIMIT %d", s.limit))
	}

	args := make([]any, 0, len(s.joinArgs)+len(s.args))
	args = append(args, s.joinArgs...)
	args = append(args, s.args...)

	return b.String(), args
}
