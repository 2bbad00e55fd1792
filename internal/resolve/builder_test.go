package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftline/rosterlink/internal/model"
)

func primaryRec(id, name, dob string) model.SourceRecord {
	return model.SourceRecord{Source: model.SourcePrimary, SourceID: id, FullName: name, BirthDate: dob}
}

func statsRec(id, name, dob, primaryID string) model.SourceRecord {
	return model.SourceRecord{Source: model.SourceStats, SourceID: id, FullName: name, BirthDate: dob, PrimaryID: primaryID}
}

func legacyRec(id, name, dob string) model.SourceRecord {
	return model.SourceRecord{Source: model.SourceLegacy, SourceID: id, FullName: name, BirthDate: dob}
}

func TestBuild_ThreeSourcesOnePlayer(t *testing.T) {
	reg, report := NewBuilder().Build(
		[]model.SourceRecord{primaryRec("100", "Joe Smith", "1990-01-01")},
		[]model.SourceRecord{statsRec("200", "Joe Smith", "1990-01-01", "100")},
		[]model.SourceRecord{legacyRec("L9", "Joe Smith", "")},
	)

	require.Len(t, reg.Players, 1)
	p := reg.Get("100")
	require.NotNil(t, p)
	assert.Equal(t, "Joe Smith", p.DisplayName)
	assert.Equal(t, "100", p.Identifiers[model.SourcePrimary])
	assert.Equal(t, "200", p.Identifiers[model.SourceStats])
	assert.Equal(t, "L9", p.Identifiers[model.SourceLegacy])

	assert.Equal(t, 1, report.PlayersCreated)
	assert.Equal(t, 2, report.Enriched+report.NameFallbacks)
	assert.Equal(t, 0, report.Dropped)
	assert.Equal(t, 0, report.ConflictBinds)
}

func TestBuild_AliasResolutionRoundTrip(t *testing.T) {
	// Every record with a non-empty identifier must resolve to a player
	// whose identifier map points back at that identifier.
	primary := []model.SourceRecord{
		primaryRec("100", "Joe Smith", "1990-01-01"),
		primaryRec("101", "Amari Cooper", "1994-06-17"),
	}
	stats := []model.SourceRecord{
		statsRec("200", "Joe Smith", "1990-01-01", "100"),
		statsRec("201", "Amari Cooper", "1994-06-17", "101"),
	}

	reg, _ := NewBuilder().Build(primary, stats, nil)

	for _, rec := range primary {
		p := reg.Lookup(model.SourcePrimary, rec.SourceID)
		require.NotNil(t, p)
		assert.Equal(t, rec.SourceID, p.Identifiers[model.SourcePrimary])
	}
	for _, rec := range stats {
		p := reg.Lookup(model.SourceStats, rec.SourceID)
		require.NotNil(t, p)
		assert.Equal(t, rec.SourceID, p.Identifiers[model.SourceStats])
	}
}

func TestBuild_StatsMissCreatesPlayerFromCarriedPrimaryID(t *testing.T) {
	reg, _ := NewBuilder().Build(
		nil,
		[]model.SourceRecord{statsRec("200", "Joe Smith", "1990-01-01", "100")},
		nil,
	)

	p := reg.Get("100")
	require.NotNil(t, p, "carried primary ID anchors the canonical ID")
	assert.Equal(t, "200", p.Identifiers[model.SourceStats])
}

func TestBuild_StatsOnlyStub(t *testing.T) {
	reg, report := NewBuilder().Build(
		nil,
		[]model.SourceRecord{statsRec("200", "Joe Smith", "1990-01-01", "")},
		nil,
	)

	p := reg.Get("stats:200")
	require.NotNil(t, p)
	assert.Equal(t, 1, report.StubsCreated)
}

func TestBuild_LegacyNameFallback(t *testing.T) {
	reg, report := NewBuilder().Build(
		[]model.SourceRecord{primaryRec("100", "Patrick Mahomes II", "1995-09-17")},
		nil,
		[]model.SourceRecord{legacyRec("L1", "PATRICK MAHOMES", "1995-09-17")},
	)

	require.Len(t, reg.Players, 1)
	assert.Equal(t, 1, report.NameFallbacks)

	p := reg.Lookup(model.SourceLegacy, "L1")
	require.NotNil(t, p)
	assert.Equal(t, "100", p.CanonicalID)
}

func TestBuild_LegacyTotalMissMakesStub(t *testing.T) {
	reg, report := NewBuilder().Build(
		[]model.SourceRecord{primaryRec("100", "Joe Smith", "1990-01-01")},
		nil,
		[]model.SourceRecord{legacyRec("L7", "Ancient Fullback", "1940-02-02")},
	)

	require.Len(t, reg.Players, 2)
	p := reg.Get("legacy:L7")
	require.NotNil(t, p)
	assert.Equal(t, "L7", p.Identifiers[model.SourceLegacy])
	assert.Equal(t, 1, report.StubsCreated)
}

func TestBuild_DuplicatePrimaryIDFirstWins(t *testing.T) {
	reg, report := NewBuilder().Build(
		[]model.SourceRecord{
			primaryRec("100", "Joe Smith", "1990-01-01"),
			primaryRec("100", "Impostor", "1980-01-01"),
		},
		nil, nil)

	require.Len(t, reg.Players, 1)
	assert.Equal(t, "Joe Smith", reg.Get("100").DisplayName, "first record keeps the slot")
	assert.Equal(t, 1, report.PlayersCreated)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 0, report.Dropped)
}

func TestBuild_DropsUnresolvableRecords(t *testing.T) {
	reg, report := NewBuilder().Build(
		[]model.SourceRecord{{Source: model.SourcePrimary, FullName: "No ID Guy"}},
		[]model.SourceRecord{{Source: model.SourceStats}},
		[]model.SourceRecord{{Source: model.SourceLegacy, FullName: "Nameless"}},
	)

	assert.Empty(t, reg.Players)
	assert.Equal(t, 3, report.Dropped)
}

func TestBuild_EnrichmentNeverOverwrites(t *testing.T) {
	primary := primaryRec("100", "Joe Smith", "1990-01-01")
	primary.Position = "QB"
	stats := statsRec("200", "Joseph Smith", "1990-01-01", "100")
	stats.Position = "WR"
	stats.College = "Alabama"

	reg, _ := NewBuilder().Build(
		[]model.SourceRecord{primary},
		[]model.SourceRecord{stats},
		nil,
	)

	p := reg.Get("100")
	require.NotNil(t, p)
	assert.Equal(t, "Joe Smith", p.DisplayName, "populated fields are kept")
	assert.Equal(t, "QB", p.Position)
	assert.Equal(t, "Alabama", p.College, "empty fields are filled")
}

func TestBuild_ConflictingBindPreserved(t *testing.T) {
	// Two primary records claiming the same stats ID: the first bind
	// holds, the second is counted as a conflict.
	a := primaryRec("100", "Joe Smith", "1990-01-01")
	a.StatsID = "200"
	b := primaryRec("101", "Joe Smyth", "1991-01-01")
	b.StatsID = "200"

	reg, report := NewBuilder().Build([]model.SourceRecord{a, b}, nil, nil)

	p := reg.Lookup(model.SourceStats, "200")
	require.NotNil(t, p)
	assert.Equal(t, "100", p.CanonicalID)
	assert.Equal(t, 1, report.ConflictBinds)
	assert.Empty(t, reg.Get("101").Identifier(model.SourceStats))
}
