package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftline/rosterlink/internal/model"
)

func TestJoin_MatchedCleanRow(t *testing.T) {
	left := []model.SourceRecord{statsRec("200", "Joe Smith", "1990-01-01", "100")}
	right := []model.SourceRecord{primaryRec("100", "Joe Smith", "1990-01-01")}

	res := Join(left, right, model.FieldPrimaryID)

	require.Len(t, res.Rows, 1)
	row := res.Rows[0]
	assert.Equal(t, "100", row.Key)
	require.NotNil(t, row.Right)
	assert.True(t, row.NameMatch)
	assert.True(t, row.DateMatch)
	assert.False(t, row.Suspicious)
	assert.Empty(t, res.Suspicious)

	assert.Equal(t, 1, res.Summary.TotalRows)
	assert.Equal(t, 1, res.Summary.RowsWithKey)
	assert.Equal(t, 1, res.Summary.MatchedRows)
	assert.Equal(t, 1.0, res.Summary.MatchRate)
}

func TestJoin_NameMismatchIsSuspicious(t *testing.T) {
	left := []model.SourceRecord{statsRec("200", "Joe Smith", "1990-01-01", "100")}
	right := []model.SourceRecord{primaryRec("100", "Bob Jones", "1990-01-01")}

	res := Join(left, right, model.FieldPrimaryID)

	require.Len(t, res.Suspicious, 1)
	assert.False(t, res.Suspicious[0].NameMatch)
	assert.True(t, res.Suspicious[0].DateMatch)
	assert.Equal(t, 1, res.Summary.SuspiciousRows)
}

func TestJoin_DateMismatchIsSuspicious(t *testing.T) {
	left := []model.SourceRecord{statsRec("200", "Joe Smith", "1990-01-01", "100")}
	right := []model.SourceRecord{primaryRec("100", "Joe Smith", "1991-05-05")}

	res := Join(left, right, model.FieldPrimaryID)

	require.Len(t, res.Suspicious, 1)
	assert.True(t, res.Suspicious[0].NameMatch)
	assert.False(t, res.Suspicious[0].DateMatch)
}

func TestJoin_NormalizedComparison(t *testing.T) {
	// Suffixes and casing differences are not mismatches.
	left := []model.SourceRecord{statsRec("200", "PATRICK MAHOMES", "1995-09-17", "100")}
	right := []model.SourceRecord{primaryRec("100", "Patrick Mahomes II", "1995-09-17T00:00:00Z")}

	res := Join(left, right, model.FieldPrimaryID)

	require.Len(t, res.Rows, 1)
	assert.True(t, res.Rows[0].NameMatch)
	assert.True(t, res.Rows[0].DateMatch)
	assert.Empty(t, res.Suspicious)
}

func TestJoin_LeftRowsWithoutKeyAreKept(t *testing.T) {
	left := []model.SourceRecord{
		statsRec("200", "Joe Smith", "1990-01-01", "100"),
		statsRec("201", "No Link", "1992-02-02", ""),
	}
	right := []model.SourceRecord{primaryRec("100", "Joe Smith", "1990-01-01")}

	res := Join(left, right, model.FieldPrimaryID)

	require.Len(t, res.Rows, 2)
	assert.Nil(t, res.Rows[1].Right)
	assert.False(t, res.Rows[1].Suspicious, "unmatched rows are not suspicious")
	assert.Equal(t, 2, res.Summary.TotalRows)
	assert.Equal(t, 1, res.Summary.RowsWithKey)
	assert.Equal(t, 1, res.Summary.MatchedRows)
}

func TestJoin_UnmatchedKeyIsNotSuspicious(t *testing.T) {
	left := []model.SourceRecord{statsRec("200", "Joe Smith", "1990-01-01", "999")}
	right := []model.SourceRecord{primaryRec("100", "Joe Smith", "1990-01-01")}

	res := Join(left, right, model.FieldPrimaryID)

	require.Len(t, res.Rows, 1)
	assert.Nil(t, res.Rows[0].Right)
	assert.Empty(t, res.Suspicious)
	assert.Equal(t, 0, res.Summary.MatchedRows)
	assert.Equal(t, 0.0, res.Summary.MatchRate)
}

func TestJoin_CountsIdentifiersPerSource(t *testing.T) {
	left := []model.SourceRecord{
		statsRec("200", "Joe Smith", "1990-01-01", "100"),
		statsRec("201", "Bob Jones", "1991-02-02", ""),
	}
	left[1].LegacyID = "L7"
	right := []model.SourceRecord{primaryRec("100", "Joe Smith", "1990-01-01")}

	res := Join(left, right, model.FieldPrimaryID)

	assert.Equal(t, 1, res.Summary.RowsWithID[model.SourcePrimary])
	assert.Equal(t, 2, res.Summary.RowsWithID[model.SourceStats], "own source_id counts")
	assert.Equal(t, 1, res.Summary.RowsWithID[model.SourceLegacy])
}

func TestJoin_DuplicateRightKeysFirstWins(t *testing.T) {
	left := []model.SourceRecord{statsRec("200", "Joe Smith", "1990-01-01", "100")}
	right := []model.SourceRecord{
		primaryRec("100", "Joe Smith", "1990-01-01"),
		primaryRec("100", "Impostor", "1980-01-01"),
	}

	res := Join(left, right, model.FieldPrimaryID)

	require.NotNil(t, res.Rows[0].Right)
	assert.Equal(t, "Joe Smith", res.Rows[0].Right.FullName)
}

func TestJoin_SuspiciousTable(t *testing.T) {
	left := []model.SourceRecord{statsRec("200", "Joe Smith", "1990-01-01", "100")}
	right := []model.SourceRecord{primaryRec("100", "Bob Jones", "1990-01-01")}

	rows := Join(left, right, model.FieldPrimaryID).SuspiciousTable()

	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0].Key)
	assert.Equal(t, "200", rows[0].LeftSourceID)
	assert.Equal(t, "Joe Smith", rows[0].LeftName)
	assert.Equal(t, "100", rows[0].RightSourceID)
	assert.Equal(t, "Bob Jones", rows[0].RightName)
	assert.False(t, rows[0].NameMatch)
	assert.True(t, rows[0].DateMatch)
}
