package query

import (
	"encoding/json"
	"strings"
)

// ToDocument converts a value into its JSON-shaped map form.
func ToDocument(v any) (Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// ToDocuments converts a slice of entities.
func ToDocuments[T any](items []T) ([]Document, error) {
	out := make([]Document, 0, len(items))
	for i := range items {
		d, err := ToDocument(items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Project keeps only the listed top-level keys; "id" is always kept.
// An empty list leaves the document untouched.
func Project(d Document, fields []string) Document {
	if len(fields) == 0 {
		return d
	}
	out := Document{}
	if id, ok := d["id"]; ok {
		out["id"] = id
	}
	for _, f := range fields {
		if v, ok := d[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Lookup resolves a dotted path such as "location.city".
func (d Document) Lookup(path string) (any, bool) {
	var cur any = map[string]any(d)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			if dm, isDoc := cur.(Document); isDoc {
				m = dm
			} else {
				return nil, false
			}
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
