// Package store defines the CollectionStore contract the Envelope
// Executor and Metrics Aggregator run against (spec.md §3, §5, §9:
// "the core treats CollectionStore as an opaque interface"), plus the
// MongoDB-style atomic Transform operators used by upserts.
//
// Transform/TransformOp/TransformOpType mirror the naming antfly/types.go
// re-exports from its oapi package, reconstructed here because that
// generated package is not part of this module's dependency surface.
package store

import (
	"context"

	"github.com/usnistgov/rmm-go/internal/rmmgw/queryplan"
)

// Document is a schema-flexible record as read from or written to a
// collection.
type Document map[string]any

// Cursor iterates materialized documents from a Find call. Callers
// must call Close on every exit path (spec.md §5: "scoped ownership").
type Cursor interface {
	Next(ctx context.Context) bool
	Decode() (Document, error)
	Close(ctx context.Context) error
	Err() error
}

// CollectionStore is the opaque document-store handle every pipeline
// stage downstream of the Query Plan Builder runs against. Handles are
// shared across requests and must be safe for concurrent use
// (spec.md §5).
type CollectionStore interface {
	// IsEmpty reports whether the named collection currently holds no
	// documents at all (spec.md §4.6 step 2).
	IsEmpty(ctx context.Context, collection string) (bool, error)

	// Count returns the number of documents in collection matching
	// filter, independent of any pagination (spec.md §4.6 step 3).
	Count(ctx context.Context, collection string, filter any) (int64, error)

	// Find opens a cursor over collection using the plan's filter,
	// projection, sort, skip and limit.
	Find(ctx context.Context, collection string, plan queryplan.Plan) (Cursor, error)

	// Upsert applies an atomic Transform to the document in collection
	// matched by filter, creating it if absent. It reports whether the
	// document previously existed.
	Upsert(ctx context.Context, collection string, filter any, t Transform) (existed bool, err error)
}

// TransformOpType is the closed set of MongoDB-style atomic update
// operators an Upsert may apply.
type TransformOpType string

const (
	TransformOpTypeSet         TransformOpType = "set"
	TransformOpTypeInc         TransformOpType = "inc"
	TransformOpTypeMax         TransformOpType = "max"
	TransformOpTypeMin         TransformOpType = "min"
	TransformOpTypeAddToSet    TransformOpType = "addToSet"
	TransformOpTypeSetOnInsert TransformOpType = "setOnInsert"
)

// TransformOp applies Op to Field with Value.
type TransformOp struct {
	Op    TransformOpType
	Field string
	Value any
}

// Transform is an ordered list of atomic operators applied as a single
// upsert (spec.md §5: "correctness requires the store's own atomic
// upsert semantics per document key").
type Transform struct {
	Ops []TransformOp
}

// Set appends a $set-equivalent operator and returns t for chaining.
func (t Transform) Set(field string, value any) Transform {
	t.Ops = append(t.Ops, TransformOp{Op: TransformOpTypeSet, Field: field, Value: value})
	return t
}

// Inc appends an $inc-equivalent operator.
func (t Transform) Inc(field string, delta any) Transform {
	t.Ops = append(t.Ops, TransformOp{Op: TransformOpTypeInc, Field: field, Value: delta})
	return t
}

// Max appends a $max-equivalent operator.
func (t Transform) Max(field string, value any) Transform {
	t.Ops = append(t.Ops, TransformOp{Op: TransformOpTypeMax, Field: field, Value: value})
	return t
}

// Min appends a $min-equivalent operator.
func (t Transform) Min(field string, value any) Transform {
	t.Ops = append(t.Ops, TransformOp{Op: TransformOpTypeMin, Field: field, Value: value})
	return t
}

// AddToSet appends an $addToSet-equivalent operator.
func (t Transform) AddToSet(field string, value any) Transform {
	t.Ops = append(t.Ops, TransformOp{Op: TransformOpTypeAddToSet, Field: field, Value: value})
	return t
}

// SetOnInsert appends a $setOnInsert-equivalent operator, applied only
// when the upsert creates a new document.
func (t Transform) SetOnInsert(field string, value any) Transform {
	t.Ops = append(t.Ops, TransformOp{Op: TransformOpTypeSetOnInsert, Field: field, Value: value})
	return t
}
