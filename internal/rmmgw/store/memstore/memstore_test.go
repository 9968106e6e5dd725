package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/usnistgov/rmm-go/internal/rmmgw/filter"
	"github.com/usnistgov/rmm-go/internal/rmmgw/queryplan"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
)

func TestIsEmptyOnFreshCollection(t *testing.T) {
	s := New()
	empty, err := s.IsEmpty(context.Background(), "records")
	assert.NoError(t, err)
	assert.True(t, empty)
}

func TestSeedAndCount(t *testing.T) {
	s := New()
	s.Seed("records",
		store.Document{"title": "Radiation Physics", "topic": []any{map[string]any{"tag": "Physics"}}},
		store.Document{"title": "Chemistry Basics", "topic": []any{map[string]any{"tag": "Chemistry"}}},
	)

	n, err := s.Count(context.Background(), "records", nil)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, n)

	f := filter.Leaf{Field: "topic", Match: filter.ElemMatch{Sub: "tag", Inner: filter.PartialRegex("Physics")}}
	n, err = s.Count(context.Background(), "records", f)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestFindAppliesSkipLimitAndProjection(t *testing.T) {
	s := New()
	s.Seed("records",
		store.Document{"title": "A"},
		store.Document{"title": "B"},
		store.Document{"title": "C"},
	)

	plan := queryplan.Plan{Skip: 1, Limit: 1, Projection: map[string]int{"title": 1}}
	cur, err := s.Find(context.Background(), "records", plan)
	assert.NoError(t, err)
	defer cur.Close(context.Background())

	var got []store.Document
	for cur.Next(context.Background()) {
		d, err := cur.Decode()
		assert.NoError(t, err)
		got = append(got, d)
	}
	assert.Len(t, got, 1)
	_, hasInternal := got[0]["_id"]
	assert.True(t, hasInternal)
}

func TestUpsertCreatesThenUpdatesAtomically(t *testing.T) {
	s := New()
	f := filter.Leaf{Field: "ediid", Match: filter.Equals{Value: "E1"}}

	existed, err := s.Upsert(context.Background(), "records_metrics", f, store.Transform{}.Set("ediid", "E1").Inc("download_count", 1))
	assert.NoError(t, err)
	assert.False(t, existed)

	existed, err = s.Upsert(context.Background(), "records_metrics", f, store.Transform{}.Inc("download_count", 1))
	assert.NoError(t, err)
	assert.True(t, existed)

	n, err := s.Count(context.Background(), "records_metrics", f)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestFindWithNoSortPreservesInsertionOrder(t *testing.T) {
	s := New()
	s.Seed("records",
		store.Document{"title": "third"},
		store.Document{"title": "first"},
		store.Document{"title": "second"},
	)

	cur, err := s.Find(context.Background(), "records", queryplan.Plan{})
	assert.NoError(t, err)
	defer cur.Close(context.Background())

	var titles []string
	for cur.Next(context.Background()) {
		d, _ := cur.Decode()
		titles = append(titles, d["title"].(string))
	}
	assert.Equal(t, []string{"third", "first", "second"}, titles)
}

func TestSortOrdersByCollatedStringAscending(t *testing.T) {
	s := New()
	s.Seed("records",
		store.Document{"title": "banana"},
		store.Document{"title": "Apple"},
		store.Document{"title": "cherry"},
	)

	plan := queryplan.Plan{Sort: []queryplan.SortKey{{Field: "title", NullsLast: true}}}
	cur, err := s.Find(context.Background(), "records", plan)
	assert.NoError(t, err)
	defer cur.Close(context.Background())

	var titles []string
	for cur.Next(context.Background()) {
		d, _ := cur.Decode()
		titles = append(titles, d["title"].(string))
	}
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles)
}
