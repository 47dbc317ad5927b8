package query

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Control keys steer projection, ordering and paging; they never filter.
var controlKeys = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// IsControlKey reports whether key is one of select, sort, page or limit.
func IsControlKey(key string) bool { return controlKeys[key] }

var operatorKey = regexp.MustCompile(`^([^\[\]]+)\[(lt|lte|gt|gte|ne|in)\]$`)

// Translate turns raw query parameters into a filter.
//
//	field[op]=v   comparison, op one of lt lte gt gte ne in
//	field=%v%     substring match on v with every % removed
//	field=v       equality; repeated keys become membership
//
// Bracketed keys with any other operator are kept as literal field names.
// Translate never fails; typing happens later in Schema.Resolve.
func Translate(values url.Values) Filter {
	f := Filter{}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if controlKeys[key] {
			continue
		}
		vals := values[key]
		if len(vals) == 0 {
			continue
		}

		if m := operatorKey.FindStringSubmatch(key); m != nil {
			field, op := m[1], Op(m[2])
			if op == OpIn {
				f.Where(field, OpIn, splitList(vals))
				continue
			}
			for _, v := range vals {
				f.Where(field, op, v)
			}
			continue
		}

		if len(vals) > 1 {
			f.Where(key, OpIn, append([]string(nil), vals...))
			continue
		}
		v := vals[0]
		if strings.Contains(v, "%") {
			f.Where(key, OpContains, strings.ReplaceAll(v, "%", ""))
			continue
		}
		f.Where(key, OpEq, v)
	}
	return f
}

func splitList(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// ParseSelect reads the comma separated projection list.
func ParseSelect(values url.Values) []string {
	raw := values.Get("select")
	if raw == "" {
		return nil
	}
	return splitList([]string{raw})
}

// DefaultSort is newest first.
var DefaultSort = []SortField{{Field: "createdAt", Desc: true}}

// ParseSort reads the comma separated ordering list; a leading '-' sorts
// descending. Without a sort parameter DefaultSort applies.
func ParseSort(values url.Values) []SortField {
	raw := values.Get("sort")
	if raw == "" {
		return DefaultSort
	}
	var out []SortField
	for _, p := range splitList([]string{raw}) {
		desc := strings.HasPrefix(p, "-")
		name := strings.TrimLeft(p, "-+")
		if name == "" {
			continue
		}
		out = append(out, SortField{Field: name, Desc: desc})
	}
	if len(out) == 0 {
		return DefaultSort
	}
	return out
}
