// Package memory is an in-process store driver. It keeps entities in maps
// guarded by a mutex and evaluates filters in Go; tests and local demos run on
// it without a database.
package memory

import (
	"sync"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

// uniqueIndex rejects two items sharing a non-empty key.
type uniqueIndex[T any] struct {
	key       func(*T) string
	duplicate func(*T) error
}

type collection[T any] struct {
	mu      sync.RWMutex
	name    string
	items   map[string]T
	order   []string // insertion order, for stable scans
	schema  query.Schema
	id      func(*T) string
	indexes []uniqueIndex[T]
}

func newCollection[T any](name string, schema query.Schema, id func(*T) string, idx ...uniqueIndex[T]) *collection[T] {
	return &collection[T]{
		name:    name,
		items:   make(map[string]T),
		schema:  schema,
		id:      id,
		indexes: idx,
	}
}

func (c *collection[T]) notFound(id string) error {
	return apperror.NotFound("%s not found with id of %s", c.name, id)
}

// checkUnique must be called with the lock held.
func (c *collection[T]) checkUnique(item *T) error {
	self := c.id(item)
	for _, idx := range c.indexes {
		k := idx.key(item)
		if k == "" {
			continue
		}
		for id, other := range c.items {
			if id == self {
				continue
			}
			if idx.key(&other) == k {
				return idx.duplicate(item)
			}
		}
	}
	return nil
}

func (c *collection[T]) insert(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkUnique(&item); err != nil {
		return err
	}
	id := c.id(&item)
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = item
	return nil
}

func (c *collection[T]) get(id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return nil, c.notFound(id)
	}
	return &item, nil
}

func (c *collection[T]) replace(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.id(&item)
	if _, ok := c.items[id]; !ok {
		return c.notFound(id)
	}
	if err := c.checkUnique(&item); err != nil {
		return err
	}
	c.items[id] = item
	return nil
}

// modify applies fn to the stored item in place.
func (c *collection[T]) modify(id string, fn func(*T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		return c.notFound(id)
	}
	fn(&item)
	c.items[id] = item
	return nil
}

func (c *collection[T]) remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return c.notFound(id)
	}
	delete(c.items, id)
	c.dropOrder(id)
	return nil
}

func (c *collection[T]) dropOrder(id string) {
	for i, x := range c.order {
		if x == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// scan returns the items and their documents matching f, in insertion order.
// Must be called with at least the read lock held.
func (c *collection[T]) scan(f query.Filter) ([]T, []query.Document, error) {
	var (
		items []T
		docs  []query.Document
	)
	for _, id := range c.order {
		item := c.items[id]
		d, err := query.ToDocument(item)
		if err != nil {
			return nil, nil, err
		}
		if !matches(c.schema, d, f) {
			continue
		}
		items = append(items, item)
		docs = append(docs, d)
	}
	return items, docs, nil
}

func (c *collection[T]) find(q query.Query) ([]T, error) {
	c.mu.RLock()
	items, docs, err := c.scan(q.Filter)
	c.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	if len(q.Sort) > 0 {
		sortDocs(c.schema, docs, idx, q.Sort)
	}

	if q.Skip > 0 {
		if q.Skip >= len(idx) {
			idx = nil
		} else {
			idx = idx[q.Skip:]
		}
	}
	if q.Limit > 0 && len(idx) > q.Limit {
		idx = idx[:q.Limit]
	}
	out := make([]T, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i])
	}
	return out, nil
}

func (c *collection[T]) count(f query.Filter) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items, _, err := c.scan(f)
	return int64(len(items)), err
}

func (c *collection[T]) removeWhere(f query.Filter) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, _, err := c.scan(f)
	if err != nil {
		return 0, err
	}
	for i := range items {
		id := c.id(&items[i])
		delete(c.items, id)
		c.dropOrder(id)
	}
	return int64(len(items)), nil
}
