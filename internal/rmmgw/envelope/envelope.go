// Package envelope implements the Envelope Executor (spec.md §4.6): it
// runs a built QueryPlan against a CollectionStore and shapes the
// result into the uniform ResultEnvelope every search/list endpoint
// returns.
package envelope

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/usnistgov/rmm-go/internal/rmmgw/apierr"
	"github.com/usnistgov/rmm-go/internal/rmmgw/filter"
	"github.com/usnistgov/rmm-go/internal/rmmgw/queryplan"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
)

// Metrics is the timing block attached to every ResultEnvelope.
type Metrics struct {
	ElapsedTime float64 `json:"ElapsedTime"`
}

// ResultEnvelope is the uniform response shape for every search/list
// endpoint (spec.md §3, §6).
type ResultEnvelope struct {
	ResultCount int64            `json:"ResultCount"`
	ResultData  []store.Document `json:"ResultData"`
	PageSize    int              `json:"PageSize"`
	Metrics     Metrics          `json:"Metrics"`
}

// Execute runs plan against collection in store, implementing the
// seven-step algorithm of spec.md §4.6. The executor never returns an
// error for "zero matches" — only for an empty collection, a
// cancelled/expired context, or a store failure.
func Execute(ctx context.Context, s store.CollectionStore, collection string, plan queryplan.Plan) (ResultEnvelope, error) {
	start := time.Now()

	empty, err := s.IsEmpty(ctx, collection)
	if err != nil {
		return ResultEnvelope{}, store.ClassifyError(err)
	}
	if empty {
		return ResultEnvelope{}, apierr.New(apierr.ResourceEmpty, "collection has no documents")
	}

	count, err := s.Count(ctx, collection, plan.Filter)
	if err != nil {
		return ResultEnvelope{}, store.ClassifyError(err)
	}

	cursor, err := s.Find(ctx, collection, plan)
	if err != nil {
		return ResultEnvelope{}, store.ClassifyError(err)
	}
	defer cursor.Close(ctx)

	var data []store.Document
	for cursor.Next(ctx) {
		doc, err := cursor.Decode()
		if err != nil {
			return ResultEnvelope{}, store.ClassifyError(err)
		}
		data = append(data, doc)
	}
	if err := cursor.Err(); err != nil {
		return ResultEnvelope{}, store.ClassifyError(err)
	}
	if data == nil {
		data = []store.Document{}
	}

	pageSize := 0
	if plan.Limit > 0 {
		pageSize = plan.Limit
	}

	return ResultEnvelope{
		ResultCount: count,
		ResultData:  data,
		PageSize:    pageSize,
		Metrics:     Metrics{ElapsedTime: time.Since(start).Seconds()},
	}, nil
}

// LookupOne runs the single-document lookup specialization of
// spec.md §4.6: filter is Or(ediid=id, @id=id, @id=ark:id); the raw
// path id is URL-decoded first, and if it lacks the "ark:" prefix any
// stored ediid or @id ending in the given value also matches. Returns
// ResourceNotFound when nothing matches.
func LookupOne(ctx context.Context, s store.CollectionStore, collection, rawID string) (ResultEnvelope, error) {
	id, err := url.QueryUnescape(rawID)
	if err != nil {
		return ResultEnvelope{}, apierr.Wrap(apierr.InvalidArgument, err, "could not decode id").WithParam("id")
	}

	f := lookupFilter(id)

	plan := queryplan.Plan{Filter: f, Limit: 1}
	env, err := Execute(ctx, s, collection, plan)
	if err != nil {
		if e, ok := apierr.As(err); ok && e.Kind == apierr.ResourceEmpty {
			return ResultEnvelope{}, apierr.New(apierr.ResourceNotFound, "no document matches id").WithParam("id")
		}
		return ResultEnvelope{}, err
	}
	if env.ResultCount == 0 {
		return ResultEnvelope{}, apierr.New(apierr.ResourceNotFound, "no document matches id").WithParam("id")
	}
	return env, nil
}

// lookupFilter mirrors original_source's RecordCRUD.get: ediid==id or
// @id==id always; when id lacks the "ark:" prefix, also try
// @id=="ark:"+id and a suffix-regex match against both ediid and @id.
func lookupFilter(id string) filter.Node {
	children := []filter.Node{
		filter.Leaf{Field: "ediid", Match: filter.Equals{Value: id}},
		filter.Leaf{Field: "@id", Match: filter.Equals{Value: id}},
	}
	if !strings.HasPrefix(id, "ark:") {
		children = append(children,
			filter.Leaf{Field: "@id", Match: filter.Equals{Value: "ark:" + id}},
			filter.Leaf{Field: "ediid", Match: filter.Regex{Pattern: suffixPattern(id), CaseInsensitive: false}},
			filter.Leaf{Field: "@id", Match: filter.Regex{Pattern: suffixPattern(id), CaseInsensitive: false}},
		)
	}
	return filter.NewOr(children)
}

// suffixPattern anchors a regex so it matches any stored @id ending in
// value, supporting the "id lacks ark: prefix" fallback of spec.md §4.6.
func suffixPattern(value string) string {
	return regexp.QuoteMeta(value) + "$"
}
