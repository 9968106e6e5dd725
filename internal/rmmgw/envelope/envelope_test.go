package envelope

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/usnistgov/rmm-go/internal/rmmgw/apierr"
	"github.com/usnistgov/rmm-go/internal/rmmgw/filter"
	"github.com/usnistgov/rmm-go/internal/rmmgw/queryplan"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store/memstore"
)

// failingStore is a CollectionStore whose Find always fails with a
// given error, used to exercise Execute's error-classification path.
type failingStore struct {
	err error
}

func (f failingStore) IsEmpty(ctx context.Context, collection string) (bool, error) {
	return false, nil
}
func (f failingStore) Count(ctx context.Context, collection string, filter any) (int64, error) {
	return 0, nil
}
func (f failingStore) Find(ctx context.Context, collection string, plan queryplan.Plan) (store.Cursor, error) {
	return nil, f.err
}
func (f failingStore) Upsert(ctx context.Context, collection string, filter any, t store.Transform) (bool, error) {
	return false, nil
}

func TestExecuteOnEmptyCollectionReturnsResourceEmpty(t *testing.T) {
	s := memstore.New()
	_, err := Execute(context.Background(), s, "records", queryplan.Plan{})
	assert.Error(t, err)
}

func TestExecuteNoMatchesIsNotAnError(t *testing.T) {
	s := memstore.New()
	s.Seed("records", store.Document{"title": "Physics"})

	plan := queryplan.Plan{Filter: filter.Leaf{Field: "title", Match: filter.ExactRegex("Chemistry")}}
	env, err := Execute(context.Background(), s, "records", plan)
	assert.NoError(t, err)
	assert.EqualValues(t, 0, env.ResultCount)
	assert.Equal(t, []store.Document{}, env.ResultData)
}

func TestExecuteResultCountIndependentOfPagination(t *testing.T) {
	s := memstore.New()
	for i := 0; i < 5; i++ {
		s.Seed("records", store.Document{"title": "Physics"})
	}

	plan := queryplan.Plan{
		Filter: filter.Leaf{Field: "title", Match: filter.ExactRegex("Physics")},
		Skip:   2,
		Limit:  2,
	}
	env, err := Execute(context.Background(), s, "records", plan)
	assert.NoError(t, err)
	assert.EqualValues(t, 5, env.ResultCount)
	assert.Len(t, env.ResultData, 2)
	assert.Equal(t, 2, env.PageSize)
}

func TestExecuteUnboundedLimitReturnsAllAfterSkip(t *testing.T) {
	s := memstore.New()
	for i := 0; i < 5; i++ {
		s.Seed("records", store.Document{"title": "Physics"})
	}

	plan := queryplan.Plan{
		Filter: filter.Leaf{Field: "title", Match: filter.ExactRegex("Physics")},
		Skip:   2,
	}
	env, err := Execute(context.Background(), s, "records", plan)
	assert.NoError(t, err)
	assert.Len(t, env.ResultData, 3)
	assert.Equal(t, 0, env.PageSize)
}

func TestExecuteClassifiesMalformedQueryDriverErrorAs400Kind(t *testing.T) {
	s := failingStore{err: errors.New("invalid regex: unterminated group")}
	_, err := Execute(context.Background(), s, "records", queryplan.Plan{})
	assert.Error(t, err)
	e, ok := apierr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apierr.MalformedStoreQuery, e.Kind)
}

func TestExecuteClassifiesOtherDriverErrorAsStoreFailure(t *testing.T) {
	s := failingStore{err: errors.New("connection reset by peer")}
	_, err := Execute(context.Background(), s, "records", queryplan.Plan{})
	assert.Error(t, err)
	e, ok := apierr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apierr.StoreFailure, e.Kind)
}

func TestLookupOneMatchesByEdiid(t *testing.T) {
	s := memstore.New()
	s.Seed("records", store.Document{"ediid": "E1", "title": "Physics"})

	env, err := LookupOne(context.Background(), s, "records", "E1")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, env.ResultCount)
}

func TestLookupOneDecodesURLEncodedArkID(t *testing.T) {
	s := memstore.New()
	s.Seed("records", store.Document{"@id": "ark:/88434/mds2-2154"})

	env, err := LookupOne(context.Background(), s, "records", "ark%3A%2F88434%2Fmds2-2154")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, env.ResultCount)
}

func TestLookupOneSuffixFallbackWhenNoArkPrefix(t *testing.T) {
	s := memstore.New()
	s.Seed("records", store.Document{"@id": "ark:/88434/mds2-2154"})

	env, err := LookupOne(context.Background(), s, "records", "mds2-2154")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, env.ResultCount)
}

func TestLookupOneMatchesByEdiidSuffixWhenNoArkPrefix(t *testing.T) {
	s := memstore.New()
	s.Seed("records", store.Document{"ediid": "prefix-mds2-2154"})

	env, err := LookupOne(context.Background(), s, "records", "mds2-2154")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, env.ResultCount)
}

func TestLookupOneMatchesArkPrefixedIDGivenBareSuffix(t *testing.T) {
	s := memstore.New()
	s.Seed("records", store.Document{"@id": "ark:mds2-2154"})

	env, err := LookupOne(context.Background(), s, "records", "mds2-2154")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, env.ResultCount)
}

func TestLookupOneMissReturnsResourceNotFound(t *testing.T) {
	s := memstore.New()
	s.Seed("records", store.Document{"ediid": "E1"})

	_, err := LookupOne(context.Background(), s, "records", "does-not-exist")
	assert.Error(t, err)
}

func TestLookupOneOnEmptyCollectionReturnsResourceNotFound(t *testing.T) {
	s := memstore.New()

	_, err := LookupOne(context.Background(), s, "records", "anything")
	assert.Error(t, err)
}
