package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySplitsControlFromFields(t *testing.T) {
	p := FromRawQuery("searchphrase=cat&logicalOp=AND&topic.tag=physics&@type=Dataset&skip=5")
	c := Classify(p)

	assert.Equal(t, 3, c.Control.Len())
	assert.Equal(t, 2, c.Fields.Len())

	_, ok := c.Fields.First("topic.tag")
	assert.True(t, ok)
	_, ok = c.Fields.First("@type")
	assert.True(t, ok)

	_, ok = c.Control.First("searchphrase")
	assert.True(t, ok)
	_, ok = c.Control.First("skip")
	assert.True(t, ok)
}

func TestClassifyPreservesFieldOrder(t *testing.T) {
	p := FromRawQuery("topic.tag=physics&author.familyName=Smith")
	c := Classify(p)
	entries := c.Fields.Entries()
	assert.Equal(t, "topic.tag", entries[0].Name)
	assert.Equal(t, "author.familyName", entries[1].Name)
}
