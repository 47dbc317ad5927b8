package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
)

// Kind is the stored type of a field; it decides how string operands are
// coerced before they reach a store.
type Kind int

const (
	String Kind = iota
	Number
	Bool
	Time
	ID
	StringList // array of strings; equality means membership
)

// Field describes one filterable/sortable field.
// Column is the SQL column; Key is the document key (the field name when empty).
type Field struct {
	Kind   Kind
	Column string
	Key    string
}

// DocKey returns the document-store key for a field named name.
func (f Field) DocKey(name string) string {
	if f.Key != "" {
		return f.Key
	}
	return name
}

// Schema lists the fields of one entity by their public (JSON) name.
// Nested fields use dotted names such as "location.city".
type Schema map[string]Field

// Resolve coerces every operand to its field kind. ok is false when the filter
// names a field the schema does not know; such a filter matches nothing.
func (s Schema) Resolve(f Filter) (out Filter, ok bool, err error) {
	out = Filter{}
	ok = true
	for _, name := range f.Fields() {
		field, known := s[name]
		if !known {
			ok = false
			continue
		}
		for _, c := range f[name] {
			v, err := coerceClause(name, field.Kind, c)
			if err != nil {
				return nil, false, err
			}
			out[name] = append(out[name], Clause{Op: c.Op, Value: v})
		}
	}
	return out, ok, nil
}

// ResolveSort drops sort keys the schema does not know.
func (s Schema) ResolveSort(sf []SortField) []SortField {
	out := make([]SortField, 0, len(sf))
	for _, f := range sf {
		if _, ok := s[f.Field]; ok {
			out = append(out, f)
		}
	}
	return out
}

func coerceClause(name string, kind Kind, c Clause) (any, error) {
	switch c.Op {
	case OpContains:
		if kind != String && kind != StringList {
			return nil, apperror.Validation(fmt.Sprintf("%s does not support partial matching", name))
		}
		return fmt.Sprint(c.Value), nil
	case OpIn:
		var raw []string
		switch v := c.Value.(type) {
		case []string:
			raw = v
		case []any:
			for _, x := range v {
				raw = append(raw, fmt.Sprint(x))
			}
		default:
			raw = []string{fmt.Sprint(v)}
		}
		vals := make([]any, 0, len(raw))
		for _, r := range raw {
			x, err := Coerce(name, kind, r)
			if err != nil {
				return nil, err
			}
			vals = append(vals, x)
		}
		return vals, nil
	default:
		s, isString := c.Value.(string)
		if !isString {
			return c.Value, nil
		}
		return Coerce(name, kind, s)
	}
}

// Coerce converts a raw query-string operand for a field of the given kind.
func Coerce(name string, kind Kind, raw string) (any, error) {
	switch kind {
	case Number:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, invalidValue(name, raw)
		}
		return n, nil
	case Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, invalidValue(name, raw)
		}
		return b, nil
	case Time:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC(), nil
			}
		}
		return nil, invalidValue(name, raw)
	case ID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperror.InvalidID(raw)
		}
		return id.String(), nil
	default:
		return raw, nil
	}
}

func invalidValue(name, raw string) error {
	return apperror.Validation(fmt.Sprintf("invalid value %q for %s", raw, name))
}
