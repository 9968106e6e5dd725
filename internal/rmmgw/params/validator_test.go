package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/usnistgov/rmm-go/internal/rmmgw/apierr"
)

func TestValidateAcceptsWellFormedQuery(t *testing.T) {
	p := FromRawQuery("searchphrase=radiation&logicalOp=AND&topic.tag=physics&skip=0&limit=10")
	_, err := Validate(p)
	assert.NoError(t, err)
}

func TestValidateRejectsSecondSearchphrase(t *testing.T) {
	p := FromRawQuery("searchphrase=a&searchphrase=b")
	_, err := Validate(p)
	assert.Error(t, err)
	e, ok := apierr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apierr.InvalidArgument, e.Kind)
}

func TestValidateRejectsSearchphraseNotFirst(t *testing.T) {
	p := FromRawQuery("topic.tag=physics&searchphrase=radiation")
	_, err := Validate(p)
	assert.Error(t, err)
}

func TestValidateRejectsLogicalOpImmediatelyAfterSearchphrase(t *testing.T) {
	p := FromRawQuery("searchphrase=radiation&logicalOp=AND")
	_, err := Validate(p)
	assert.Error(t, err)
	e, _ := apierr.As(err)
	assert.Equal(t, "logicalOp", e.Param)
}

func TestValidateRejectsBadLogicalOp(t *testing.T) {
	p := FromRawQuery("topic.tag=physics&logicalOp=NOT")
	_, err := Validate(p)
	assert.Error(t, err)
}

func TestValidateAcceptsLowercaseLogicalOp(t *testing.T) {
	p := FromRawQuery("topic.tag=physics&logicalOp=and&topic.title=foo")
	_, err := Validate(p)
	assert.NoError(t, err)
}

func TestValidateRejectsDisallowedCharInSort(t *testing.T) {
	p := FromRawQuery("sort.asc=title;DROP")
	_, err := Validate(p)
	assert.Error(t, err)
}

func TestValidateAllowsSafeCharsInInclude(t *testing.T) {
	p := FromRawQuery("include=title,description@ver_1.0")
	_, err := Validate(p)
	assert.NoError(t, err)
}

func TestValidateRejectsNonIntegerSkip(t *testing.T) {
	p := FromRawQuery("skip=abc")
	_, err := Validate(p)
	assert.Error(t, err)
}

func TestValidateRejectsNegativeSkip(t *testing.T) {
	p := FromRawQuery("skip=-1")
	_, err := Validate(p)
	assert.Error(t, err)
}

func TestValidateRejectsZeroPage(t *testing.T) {
	p := FromRawQuery("page=0")
	_, err := Validate(p)
	assert.Error(t, err)
}

func TestValidateRejectsRawNULByte(t *testing.T) {
	p := FromRawQuery("title=foo%00bar")
	_, err := Validate(p)
	assert.Error(t, err)
	e, _ := apierr.As(err)
	assert.Equal(t, apierr.InvalidArgument, e.Kind)
}

func TestValidateRejectsPathTraversal(t *testing.T) {
	p := FromRawQuery("title=../../etc/passwd")
	_, err := Validate(p)
	assert.Error(t, err)
}
