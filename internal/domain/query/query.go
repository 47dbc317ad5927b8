// Package query holds the backend-neutral description of a list request:
// a predicate tree, ordering and a page window. Store adapters compile it into
// SQL, bson or an in-process matcher.
package query

import "sort"

// Op is a comparison operator in a Clause.
type Op string

const (
	OpEq       Op = "eq"
	OpNe       Op = "ne"
	OpLt       Op = "lt"
	OpLte      Op = "lte"
	OpGt       Op = "gt"
	OpGte      Op = "gte"
	OpIn       Op = "in"
	OpContains Op = "contains" // case-sensitive substring
)

// Clause is a single condition on one field. For OpIn, Value is a slice.
type Clause struct {
	Op    Op
	Value any
}

// Filter maps a field name to its clauses. Clauses on a field and the fields
// themselves are ANDed.
type Filter map[string][]Clause

// Fields returns the filtered field names in a stable order.
func (f Filter) Fields() []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Where appends a clause and returns the filter for chaining.
func (f Filter) Where(field string, op Op, value any) Filter {
	f[field] = append(f[field], Clause{Op: op, Value: value})
	return f
}

// Eq is a one-clause filter.
func Eq(field string, value any) Filter {
	return Filter{field: {{Op: OpEq, Value: value}}}
}

// In is a one-clause membership filter.
func In(field string, values []string) Filter {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Filter{field: {{Op: OpIn, Value: vals}}}
}

type SortField struct {
	Field string
	Desc  bool
}

// Query is what a store receives for a list operation.
// A zero Limit means no limit.
type Query struct {
	Filter Filter
	Sort   []SortField
	Skip   int
	Limit  int
}

// Document is the JSON-shaped form of an entity used for projection and
// relation expansion.
type Document map[string]any
