package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCanonicalPlayer(t *testing.T) {
	rec := SourceRecord{Source: SourcePrimary, SourceID: "100", FullName: "Joe Smith", Position: "QB"}
	p := NewCanonicalPlayer("100", rec)

	assert.Equal(t, "100", p.CanonicalID)
	assert.Equal(t, "Joe Smith", p.DisplayName)
	assert.Equal(t, "100", p.Identifiers[SourcePrimary])
}

func TestEnrich_FillsOnlyEmptyFields(t *testing.T) {
	p := NewCanonicalPlayer("100", SourceRecord{Source: SourcePrimary, SourceID: "100", FullName: "Joe Smith"})
	p.Enrich(SourceRecord{FullName: "Joseph Smith", Position: "QB", College: "Alabama"})

	assert.Equal(t, "Joe Smith", p.DisplayName)
	assert.Equal(t, "QB", p.Position)
	assert.Equal(t, "Alabama", p.College)

	p.Enrich(SourceRecord{Position: "WR"})
	assert.Equal(t, "QB", p.Position)
}

func TestSetIdentifier(t *testing.T) {
	p := NewCanonicalPlayer("100", SourceRecord{Source: SourcePrimary, SourceID: "100"})

	require.True(t, p.SetIdentifier(SourceStats, "200"))
	assert.True(t, p.SetIdentifier(SourceStats, "200"), "same value is accepted")
	assert.False(t, p.SetIdentifier(SourceStats, "999"), "differing value is refused")
	assert.Equal(t, "200", p.Identifier(SourceStats))

	assert.False(t, p.SetIdentifier(SourceLegacy, ""))
}

func TestForceIdentifier(t *testing.T) {
	p := NewCanonicalPlayer("100", SourceRecord{Source: SourcePrimary, SourceID: "100"})
	require.True(t, p.SetIdentifier(SourceStats, "200"))

	p.ForceIdentifier(SourceStats, "999")
	assert.Equal(t, "999", p.Identifier(SourceStats))
}
