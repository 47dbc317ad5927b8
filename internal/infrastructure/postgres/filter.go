package postgres

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var never = sq.Expr("FALSE")

// where compiles a resolved filter into a squirrel predicate.
func where(s query.Schema, f query.Filter) sq.Sqlizer {
	and := sq.And{}
	for _, name := range f.Fields() {
		def, ok := s[name]
		if !ok {
			return never
		}
		for _, c := range f[name] {
			if def.Kind == query.StringList {
				and = append(and, arrayClause(def.Column, c))
			} else {
				and = append(and, scalarClause(def.Column, c))
			}
		}
	}
	return and
}

func scalarClause(col string, c query.Clause) sq.Sqlizer {
	switch c.Op {
	case query.OpEq:
		return sq.Eq{col: c.Value}
	case query.OpNe:
		// a missing value is "not equal" too
		return sq.Or{sq.NotEq{col: c.Value}, sq.Eq{col: nil}}
	case query.OpLt:
		return sq.Lt{col: c.Value}
	case query.OpLte:
		return sq.LtOrEq{col: c.Value}
	case query.OpGt:
		return sq.Gt{col: c.Value}
	case query.OpGte:
		return sq.GtOrEq{col: c.Value}
	case query.OpIn:
		vals, _ := c.Value.([]any)
		if len(vals) == 0 {
			return never
		}
		return sq.Eq{col: vals}
	case query.OpContains:
		return sq.Expr("strpos("+col+", ?) > 0", c.Value)
	}
	return never
}

func arrayClause(col string, c query.Clause) sq.Sqlizer {
	switch c.Op {
	case query.OpEq:
		return sq.Expr("? = ANY("+col+")", c.Value)
	case query.OpNe:
		return sq.Expr("NOT (? = ANY("+col+"))", c.Value)
	case query.OpIn:
		vals, _ := c.Value.([]any)
		strs := make([]string, 0, len(vals))
		for _, v := range vals {
			if s, ok := v.(string); ok {
				strs = append(strs, s)
			}
		}
		if len(strs) == 0 {
			return never
		}
		return sq.Expr(col+" && ?", strs)
	case query.OpContains:
		return sq.Expr("EXISTS (SELECT 1 FROM unnest("+col+") AS item WHERE strpos(item, ?) > 0)", c.Value)
	}
	return never
}

// orderBy maps sort fields to columns; id breaks ties so paging is stable.
func orderBy(s query.Schema, sorts []query.SortField) []string {
	out := make([]string, 0, len(sorts)+1)
	for _, sf := range sorts {
		def, ok := s[sf.Field]
		if !ok {
			continue
		}
		dir := " ASC"
		if sf.Desc {
			dir = " DESC"
		}
		out = append(out, def.Column+dir)
	}
	return append(out, "id ASC")
}
