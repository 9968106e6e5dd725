// Package memstore is a reference in-memory CollectionStore
// implementation used by tests and by the gateway when no external
// store is configured.
package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/usnistgov/rmm-go/internal/rmmgw/queryplan"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
)

// Store is a process-local CollectionStore keyed by collection name.
// Safe for concurrent use (spec.md §5).
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

type collection struct {
	mu   sync.Mutex
	docs map[string]store.Document
	// order records insertion order so an unsorted Find can honor the
	// store's natural order (spec.md §9 supplement) instead of Go's
	// randomized map iteration.
	order []string
}

// New returns an empty Store.
func New() *Store {
	return &Store{collections: make(map[string]*collection)}
}

// Seed inserts docs into collection name, assigning a "_id" to any
// document that lacks one. Intended for tests and fixture loading.
func (s *Store) Seed(name string, docs ...store.Document) {
	c := s.collectionFor(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range docs {
		id, ok := d["_id"].(string)
		if !ok || id == "" {
			id = uuid.NewString()
			d["_id"] = id
		}
		if _, exists := c.docs[id]; !exists {
			c.order = append(c.order, id)
		}
		c.docs[id] = cloneDoc(d)
	}
}

func (s *Store) collectionFor(name string) *collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]store.Document)}
		s.collections[name] = c
	}
	return c
}

func (s *Store) IsEmpty(ctx context.Context, name string) (bool, error) {
	c := s.collectionFor(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs) == 0, nil
}

func (s *Store) Count(ctx context.Context, name string, filter any) (int64, error) {
	c := s.collectionFor(name)
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for _, d := range c.docs {
		if matches(d, filter) {
			n++
		}
	}
	return n, nil
}

func (s *Store) Find(ctx context.Context, name string, plan queryplan.Plan) (store.Cursor, error) {
	c := s.collectionFor(name)
	c.mu.Lock()
	matched := make([]store.Document, 0, len(c.docs))
	for _, id := range c.order {
		d, ok := c.docs[id]
		if !ok {
			continue
		}
		if matches(d, plan.Filter) {
			matched = append(matched, cloneDoc(d))
		}
	}
	c.mu.Unlock()

	sortDocs(matched, plan.Sort)

	skip := plan.Skip
	if skip > len(matched) {
		skip = len(matched)
	}
	matched = matched[skip:]
	if plan.Limit > 0 && plan.Limit < len(matched) {
		matched = matched[:plan.Limit]
	}

	for i, d := range matched {
		matched[i] = applyProjection(d, plan.Projection)
	}

	return &sliceCursor{docs: matched, pos: -1}, nil
}

func (s *Store) Upsert(ctx context.Context, name string, filter any, t store.Transform) (bool, error) {
	c := s.collectionFor(name)
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, d := range c.docs {
		if matches(d, filter) {
			c.docs[id] = applyTransform(d, t, false)
			return true, nil
		}
	}

	id := uuid.NewString()
	doc := store.Document{"_id": id}
	for k, v := range identityFields(filter) {
		doc[k] = v
	}
	c.docs[id] = applyTransform(doc, t, true)
	c.order = append(c.order, id)
	return false, nil
}

type sliceCursor struct {
	docs []store.Document
	pos  int
}

func (sc *sliceCursor) Next(ctx context.Context) bool {
	if sc.pos+1 >= len(sc.docs) {
		return false
	}
	sc.pos++
	return true
}

func (sc *sliceCursor) Decode() (store.Document, error) {
	return sc.docs[sc.pos], nil
}

func (sc *sliceCursor) Close(ctx context.Context) error { return nil }
func (sc *sliceCursor) Err() error                      { return nil }

func cloneDoc(d store.Document) store.Document {
	out := make(store.Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func applyProjection(d store.Document, projection map[string]int) store.Document {
	if len(projection) == 0 {
		return d
	}
	include := false
	for k, v := range projection {
		if k != "_id" && v == 1 {
			include = true
		}
	}
	out := make(store.Document)
	if include {
		for k, v := range projection {
			if v == 1 {
				if val, ok := d[k]; ok {
					out[k] = val
				}
			}
		}
		if inc, ok := projection["_id"]; !ok || inc != 0 {
			if id, ok := d["_id"]; ok {
				out["_id"] = id
			}
		}
		return out
	}
	for k, v := range d {
		if ex, ok := projection[k]; ok && ex == 0 {
			continue
		}
		out[k] = v
	}
	return out
}

func applyTransform(d store.Document, t store.Transform, inserted bool) store.Document {
	out := cloneDoc(d)
	for _, op := range t.Ops {
		switch op.Op {
		case store.TransformOpTypeSet:
			setPath(out, op.Field, op.Value)
		case store.TransformOpTypeInc:
			cur := numberAt(out, op.Field)
			delta := toFloat(op.Value)
			setPath(out, op.Field, cur+delta)
		case store.TransformOpTypeMax:
			cur := numberAt(out, op.Field)
			v := toFloat(op.Value)
			if v > cur {
				setPath(out, op.Field, v)
			}
		case store.TransformOpTypeMin:
			cur, ok := getPath(out, op.Field)
			v := toFloat(op.Value)
			if !ok {
				setPath(out, op.Field, v)
			} else if toFloat(cur) > v {
				setPath(out, op.Field, v)
			}
		case store.TransformOpTypeAddToSet:
			addToSet(out, op.Field, op.Value)
		case store.TransformOpTypeSetOnInsert:
			if inserted {
				setPath(out, op.Field, op.Value)
			}
		}
	}
	return out
}

func addToSet(d store.Document, path string, value any) {
	existing, _ := getPath(d, path)
	list, _ := existing.([]any)
	for _, v := range list {
		if v == value {
			return
		}
	}
	list = append(list, value)
	setPath(d, path, list)
}

func numberAt(d store.Document, path string) float64 {
	v, ok := getPath(d, path)
	if !ok {
		return 0
	}
	return toFloat(v)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// setPath/getPath support dotted nested-map paths, matching the
// semi-structured documents the filter package addresses.
func setPath(d store.Document, path string, value any) {
	parts := strings.Split(path, ".")
	cur := d
	for i, p := range parts {
		if i == len(parts)-1 {
			cur[p] = value
			return
		}
		next, ok := cur[p].(store.Document)
		if !ok {
			m, ok := cur[p].(map[string]any)
			if ok {
				next = store.Document(m)
			} else {
				next = store.Document{}
				cur[p] = next
			}
		}
		cur = next
	}
}

func getPath(d store.Document, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = d
	for _, p := range parts {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case store.Document:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

// identityFields extracts the equality constraints named by filter so
// a fresh document created on upsert carries the keys it was looked up
// by (e.g. ediid on a metrics summary row).
func identityFields(f any) map[string]any {
	out := map[string]any{}
	collectIdentity(f, out)
	return out
}

