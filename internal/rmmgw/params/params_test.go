package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRawQueryPreservesOrder(t *testing.T) {
	p := FromRawQuery("searchphrase=cat&logicalOp=AND&topic.tag=physics")
	entries := p.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, "searchphrase", entries[0].Name)
	assert.Equal(t, "logicalOp", entries[1].Name)
	assert.Equal(t, "topic.tag", entries[2].Name)
}

func TestFirstAllCount(t *testing.T) {
	p := FromRawQuery("topic.tag=physics&topic.tag=chemistry")
	v, ok := p.First("topic.tag")
	assert.True(t, ok)
	assert.Equal(t, "physics", v)
	assert.Equal(t, []string{"physics", "chemistry"}, p.All("topic.tag"))
	assert.Equal(t, 2, p.Count("topic.tag"))
	assert.Equal(t, 0, p.Count("missing"))
}

func TestFromRawQueryIgnoresEmptySegments(t *testing.T) {
	p := FromRawQuery("&skip=1&&limit=2&")
	assert.Equal(t, 2, p.Len())
}
