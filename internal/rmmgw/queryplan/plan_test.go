package queryplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/usnistgov/rmm-go/internal/rmmgw/params"
)

func controlOf(raw string) params.Params {
	return params.Classify(params.FromRawQuery(raw)).Control
}

func TestBuildPaginationRule1NeitherPageNorSize(t *testing.T) {
	p, err := Build(controlOf(""), nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, p.Skip)
	assert.Equal(t, 0, p.Limit)
}

func TestBuildPaginationRule2PageOnly(t *testing.T) {
	p, err := Build(controlOf("page=2"), nil)
	assert.NoError(t, err)
	assert.Equal(t, 10, p.Skip)
	assert.Equal(t, 10, p.Limit)
}

func TestBuildPaginationRule3SizeOnly(t *testing.T) {
	p, err := Build(controlOf("size=5"), nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, p.Skip)
	assert.Equal(t, 5, p.Limit)
}

func TestBuildPaginationRule3LimitOnly(t *testing.T) {
	p, err := Build(controlOf("limit=7"), nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, p.Skip)
	assert.Equal(t, 7, p.Limit)
}

func TestBuildPaginationRule4Both(t *testing.T) {
	p, err := Build(controlOf("page=3&size=5"), nil)
	assert.NoError(t, err)
	assert.Equal(t, 10, p.Skip)
	assert.Equal(t, 5, p.Limit)
}

func TestBuildPaginationRule5ExplicitSkipOverrides(t *testing.T) {
	p, err := Build(controlOf("size=5&skip=2"), nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, p.Skip)
	assert.Equal(t, 5, p.Limit)
}

func TestBuildProjectionIncludeOnly(t *testing.T) {
	p, err := Build(controlOf("include=title,description"), nil)
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"title": 1, "description": 1}, p.Projection)
}

func TestBuildProjectionExcludeOnly(t *testing.T) {
	p, err := Build(controlOf("exclude=internal"), nil)
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"internal": 0, "_raw": 0, "_schema": 0}, p.Projection)
}

func TestBuildProjectionDefaultAlwaysExcludesInternalFields(t *testing.T) {
	p, err := Build(controlOf(""), nil)
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"_raw": 0, "_schema": 0}, p.Projection)
}

func TestBuildProjectionIncludeStripsAlwaysExcludedFromWhitelist(t *testing.T) {
	p, err := Build(controlOf("include=title,_raw"), nil)
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"title": 1}, p.Projection)
}

func TestBuildProjectionIncludeWithIDZeroAllowed(t *testing.T) {
	p, err := Build(controlOf("include=title&exclude=_id"), nil)
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"title": 1, "_id": 0}, p.Projection)
}

func TestBuildProjectionMixingFails(t *testing.T) {
	_, err := Build(controlOf("include=title&exclude=description"), nil)
	assert.Error(t, err)
}

func TestBuildSortPreservesOrderAndSetsCollate(t *testing.T) {
	p, err := Build(controlOf("sort.asc=a,b&sort.desc=c"), nil)
	assert.NoError(t, err)
	assert.Len(t, p.Sort, 3)
	assert.Equal(t, "a", p.Sort[0].Field)
	assert.False(t, p.Sort[0].Descending)
	assert.Equal(t, "c", p.Sort[2].Field)
	assert.True(t, p.Sort[2].Descending)
	assert.True(t, p.Collate)
}

func TestBuildNoSortMeansNoCollate(t *testing.T) {
	p, err := Build(controlOf(""), nil)
	assert.NoError(t, err)
	assert.False(t, p.Collate)
}
