package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

// matches evaluates a resolved filter against a document the same way the
// database adapters do: fields ANDed, clauses ANDed, unknown fields never match.
func matches(s query.Schema, d query.Document, f query.Filter) bool {
	for field, clauses := range f {
		def, ok := s[field]
		if !ok {
			return false
		}
		have, present := d.Lookup(field)
		for _, c := range clauses {
			if !matchClause(def.Kind, have, present, c) {
				return false
			}
		}
	}
	return true
}

func matchClause(kind query.Kind, have any, present bool, c query.Clause) bool {
	if !present || have == nil {
		return c.Op == query.OpNe
	}
	if kind == query.StringList {
		items, _ := have.([]any)
		switch c.Op {
		case query.OpNe:
			for _, it := range items {
				if matchScalar(query.String, it, query.Clause{Op: query.OpEq, Value: c.Value}) {
					return false
				}
			}
			return true
		default:
			for _, it := range items {
				if matchScalar(query.String, it, c) {
					return true
				}
			}
			return false
		}
	}
	return matchScalar(kind, have, c)
}

func matchScalar(kind query.Kind, have any, c query.Clause) bool {
	have = normalize(kind, have)
	switch c.Op {
	case query.OpEq:
		return equal(kind, have, c.Value)
	case query.OpNe:
		return !equal(kind, have, c.Value)
	case query.OpIn:
		vals, _ := c.Value.([]any)
		for _, v := range vals {
			if equal(kind, have, v) {
				return true
			}
		}
		return false
	case query.OpContains:
		s, ok := have.(string)
		return ok && strings.Contains(s, fmt.Sprint(c.Value))
	case query.OpLt, query.OpLte, query.OpGt, query.OpGte:
		n, ok := compare(kind, have, normalize(kind, c.Value))
		if !ok {
			return false
		}
		switch c.Op {
		case query.OpLt:
			return n < 0
		case query.OpLte:
			return n <= 0
		case query.OpGt:
			return n > 0
		default:
			return n >= 0
		}
	}
	return false
}

// normalize turns JSON-decoded values into the kind's Go type.
func normalize(kind query.Kind, v any) any {
	switch kind {
	case query.Time:
		if s, ok := v.(string); ok {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				return t
			}
		}
	case query.Number:
		switch n := v.(type) {
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return v
}

func equal(kind query.Kind, a, b any) bool {
	n, ok := compare(kind, a, normalize(kind, b))
	return ok && n == 0
}

func compare(kind query.Kind, a, b any) (int, bool) {
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	}
	return 0, false
}

// sortDocs orders indexes into docs by the sort fields; missing values sort first.
func sortDocs(s query.Schema, docs []query.Document, order []int, by []query.SortField) {
	sort.SliceStable(order, func(i, j int) bool {
		a, b := docs[order[i]], docs[order[j]]
		for _, sf := range by {
			kind := s[sf.Field].Kind
			av, aok := a.Lookup(sf.Field)
			bv, bok := b.Lookup(sf.Field)
			if !aok || !bok {
				if aok == bok {
					continue
				}
				return !aok != sf.Desc
			}
			n, ok := compare(kind, normalize(kind, av), normalize(kind, bv))
			if !ok || n == 0 {
				continue
			}
			if sf.Desc {
				return n > 0
			}
			return n < 0
		}
		return false
	})
}
