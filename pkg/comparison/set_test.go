package comparison

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolcompare/pkg/tools"
)

func TestSetHelpers(t *testing.T) {
	s := Set{{ID: "a"}, {ID: "b"}}

	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
	assert.Equal(t, 1, s.Index("b"))
	assert.Equal(t, -1, s.Index("c"))

	with := s.With(tools.Tool{ID: "c"})
	assert.Equal(t, []string{"a", "b", "c"}, with.IDs())
	assert.Equal(t, []string{"a", "b"}, s.IDs(), "receiver is not modified")

	dup := s.With(tools.Tool{ID: "a", Name: "other"})
	assert.Equal(t, []string{"a", "b"}, dup.IDs())
	assert.Empty(t, dup[0].Name)

	without := s.Without("a")
	assert.Equal(t, []string{"b"}, without.IDs())
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, []string{"a", "b"}, s.Without("zzz").IDs())
}

func TestSetCloneNil(t *testing.T) {
	var s Set
	c := s.Clone()
	assert.NotNil(t, c)
	assert.Empty(t, c)
}

func TestNormalize(t *testing.T) {
	in := Set{{ID: " a "}, {ID: ""}, {ID: "b"}, {ID: "a"}, {ID: "c"}}
	out, dropped := Normalize(in, 2)
	assert.Equal(t, []string{"a", "b"}, out.IDs())
	assert.Equal(t, 3, dropped)

	out, dropped = Normalize(in, 0)
	assert.Equal(t, []string{"a", "b", "c"}, out.IDs())
	assert.Equal(t, 2, dropped)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unloaded", StateUnloaded.String())
	assert.Equal(t, "synced", StateSynced.String())
	assert.Equal(t, "local_only", StateLocalOnly.String())
	assert.False(t, StateUnloaded.Loaded())
	assert.True(t, StateLocalOnly.Loaded())
}

func TestStateJSON(t *testing.T) {
	data, err := json.Marshal(Status{State: StateLocalOnly})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"local_only"`)

	var st Status
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, StateLocalOnly, st.State)
}
