package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Notion", Tool{ID: "1", Name: "Notion", Slug: "notion"}.DisplayName())
	assert.Equal(t, "notion", Tool{ID: "1", Name: "  ", Slug: "notion"}.DisplayName())
	assert.Equal(t, "1", Tool{ID: "1"}.DisplayName())
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder("linear")
	assert.Equal(t, "linear", p.ID)
	assert.True(t, p.Partial)
	assert.Equal(t, "linear", p.DisplayName())
}

func TestStamp(t *testing.T) {
	stamped := Tool{ID: "a"}.Stamp()
	if assert.NotNil(t, stamped.AddedAt) {
		assert.False(t, stamped.AddedAt.IsZero())
	}

	again := stamped.Stamp()
	assert.Equal(t, stamped.AddedAt, again.AddedAt)
}

func TestClone(t *testing.T) {
	orig := Tool{ID: "a", Tags: []string{"crm"}}.Stamp()
	c := orig.Clone()
	c.Tags[0] = "changed"
	assert.Equal(t, "crm", orig.Tags[0])
	assert.NotSame(t, orig.AddedAt, c.AddedAt)
	assert.Equal(t, *orig.AddedAt, *c.AddedAt)
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "abc", NormalizeID("  abc\n"))
	assert.Empty(t, NormalizeID("   "))
}
