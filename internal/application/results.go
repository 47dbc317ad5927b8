package application

import (
	"context"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

// Result is the list envelope written verbatim by list handlers.
type Result struct {
	Success    bool             `json:"success"`
	Count      int              `json:"count"`
	Pagination query.Pagination `json:"pagination"`
	Data       []query.Document `json:"data"`
}

// Runner evaluates a raw query string into a Result.
type Runner interface {
	Run(ctx context.Context, values url.Values) (*Result, error)
}

// Source is the read side of a repository.
type Source[T any] struct {
	Find  func(ctx context.Context, q query.Query) ([]T, error)
	Count func(ctx context.Context, f query.Filter) (int64, error)
}

// Expander rewrites documents in place, typically to embed related entities.
type Expander func(ctx context.Context, docs []query.Document) error

// Engine runs filtered, sorted, paginated and expanded list queries over one
// entity collection.
type Engine[T any] struct {
	source Source[T]
	schema query.Schema
	expand []Expander
}

func NewEngine[T any](source Source[T], schema query.Schema, expand ...Expander) *Engine[T] {
	return &Engine[T]{source: source, schema: schema, expand: expand}
}

// Run translates values, counts and fetches the page concurrently, then
// projects and expands the documents. Count and fetch are separate reads, so
// a concurrent write may make them disagree.
func (e *Engine[T]) Run(ctx context.Context, values url.Values) (*Result, error) {
	filter, ok, err := e.schema.Resolve(query.Translate(values))
	if err != nil {
		return nil, err
	}
	page, limit := query.ParsePage(values)
	if !ok {
		_, p := query.Paginate(page, limit, 0)
		return &Result{Success: true, Pagination: p, Data: []query.Document{}}, nil
	}

	sort := e.schema.ResolveSort(query.ParseSort(values))
	if len(sort) == 0 {
		sort = query.DefaultSort
	}
	skip, _ := query.Paginate(page, limit, 0)

	var (
		total int64
		items []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := e.source.Count(gctx, filter)
		total = n
		return err
	})
	g.Go(func() error {
		rows, err := e.source.Find(gctx, query.Query{Filter: filter, Sort: sort, Skip: skip, Limit: limit})
		items = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs, err := query.ToDocuments(items)
	if err != nil {
		return nil, err
	}
	fields := query.ParseSelect(values)
	for i := range docs {
		docs[i] = query.Project(docs[i], fields)
	}
	for _, x := range e.expand {
		if err := x(ctx, docs); err != nil {
			return nil, err
		}
	}

	_, p := query.Paginate(page, limit, total)
	return &Result{Success: true, Count: len(docs), Pagination: p, Data: docs}, nil
}

// Loader fetches documents whose field is one of values.
type Loader func(ctx context.Context, field string, values []string) ([]query.Document, error)

// LoaderOf adapts a repository Find into a Loader.
func LoaderOf[T any](find func(ctx context.Context, q query.Query) ([]T, error)) Loader {
	return func(ctx context.Context, field string, values []string) ([]query.Document, error) {
		if len(values) == 0 {
			return nil, nil
		}
		items, err := find(ctx, query.Query{Filter: query.In(field, values)})
		if err != nil {
			return nil, err
		}
		return query.ToDocuments(items)
	}
}

// RefExpander replaces the id stored under key with the referenced document
// projected to fields. A dangling reference becomes null; documents without
// the key are left alone.
func RefExpander(key string, fields []string, load Loader) Expander {
	return func(ctx context.Context, docs []query.Document) error {
		ids := distinct(docs, key)
		if len(ids) == 0 {
			return nil
		}
		related, err := load(ctx, "id", ids)
		if err != nil {
			return err
		}
		byID := make(map[string]query.Document, len(related))
		for _, r := range related {
			if id, ok := r["id"].(string); ok {
				byID[id] = query.Project(r, fields)
			}
		}
		for _, d := range docs {
			id, ok := d[key].(string)
			if !ok {
				continue
			}
			if r, found := byID[id]; found {
				d[key] = r
			} else {
				d[key] = nil
			}
		}
		return nil
	}
}

// VirtualExpander attaches under key the documents whose foreignKey points at
// each document's id, projected to fields.
func VirtualExpander(key, foreignKey string, fields []string, load Loader) Expander {
	return func(ctx context.Context, docs []query.Document) error {
		ids := distinct(docs, "id")
		if len(ids) == 0 {
			return nil
		}
		related, err := load(ctx, foreignKey, ids)
		if err != nil {
			return err
		}
		groups := make(map[string][]query.Document, len(ids))
		for _, r := range related {
			if parent, ok := r[foreignKey].(string); ok {
				groups[parent] = append(groups[parent], query.Project(r, fields))
			}
		}
		for _, d := range docs {
			id, _ := d["id"].(string)
			children := groups[id]
			if children == nil {
				children = []query.Document{}
			}
			d[key] = children
		}
		return nil
	}
}

func distinct(docs []query.Document, key string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range docs {
		id, ok := d[key].(string)
		if !ok || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
