package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftline/rosterlink/internal/model"
)

func TestAliasIndex_BindAndResolve(t *testing.T) {
	ai := NewAliasIndex()

	assert.True(t, ai.Bind(model.SourcePrimary, "100", "100"))

	id, ok := ai.Resolve(model.SourcePrimary, "100")
	require.True(t, ok)
	assert.Equal(t, "100", id)

	_, ok = ai.Resolve(model.SourceStats, "100")
	assert.False(t, ok, "bindings are per-source")
}

func TestAliasIndex_FirstWriteWins(t *testing.T) {
	ai := NewAliasIndex()

	require.True(t, ai.Bind(model.SourceStats, "200", "100"))
	assert.False(t, ai.Bind(model.SourceStats, "200", "999"))

	id, ok := ai.Resolve(model.SourceStats, "200")
	require.True(t, ok)
	assert.Equal(t, "100", id, "first binding must be unchanged")

	require.Len(t, ai.Conflicts(), 1)
	c := ai.Conflicts()[0]
	assert.Equal(t, model.SourceStats, c.Source)
	assert.Equal(t, "200", c.SourceID)
	assert.Equal(t, "100", c.Existing)
	assert.Equal(t, "999", c.Attempted)
}

func TestAliasIndex_RebindSameTargetIsNotConflict(t *testing.T) {
	ai := NewAliasIndex()

	require.True(t, ai.Bind(model.SourceLegacy, "L9", "100"))
	assert.True(t, ai.Bind(model.SourceLegacy, "L9", "100"))
	assert.Empty(t, ai.Conflicts())
}

func TestAliasIndex_EmptyInputsIgnored(t *testing.T) {
	ai := NewAliasIndex()

	assert.False(t, ai.Bind(model.SourcePrimary, "", "100"))
	assert.False(t, ai.Bind(model.SourcePrimary, "100", ""))
	assert.Equal(t, 0, ai.Len(model.SourcePrimary))
}

func TestAliasIndex_RebindOverrides(t *testing.T) {
	ai := NewAliasIndex()

	require.True(t, ai.Bind(model.SourceStats, "200", "100"))
	ai.Rebind(model.SourceStats, "201", "100")

	id, ok := ai.Resolve(model.SourceStats, "201")
	require.True(t, ok)
	assert.Equal(t, "100", id)

	// Rebind is idempotent.
	ai.Rebind(model.SourceStats, "201", "100")
	assert.Equal(t, 2, ai.Len(model.SourceStats))
}

func TestAliasIndex_CanonicalIDsSorted(t *testing.T) {
	ai := NewAliasIndex()
	ai.Rebind(model.SourcePrimary, "2", "b")
	ai.Rebind(model.SourceStats, "1", "a")
	ai.Rebind(model.SourceLegacy, "3", "b")

	assert.Equal(t, []string{"a", "b"}, ai.CanonicalIDs())
}
