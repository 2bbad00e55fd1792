package resolve

import (
	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/model"
)

// JoinedRow is one left record with its matching right record attached,
// plus the validation flags computed over NameKey/DateKey equality.
type JoinedRow struct {
	Key        string
	Left       model.SourceRecord
	Right      *model.SourceRecord
	NameMatch  bool
	DateMatch  bool
	Suspicious bool
}

// JoinResult holds the joined table, the suspicious subset, and the
// scalar audit summary. A pure, side-effect-free transformation over
// already-loaded tables.
type JoinResult struct {
	Rows       []JoinedRow
	Suspicious []JoinedRow
	Summary    model.AuditSummary
}

// Join left-joins two record sets on the shared identifier field and
// flags rows where a match exists but name or birth date disagree.
// The identifier field itself is validated upstream when the tables are
// read; Join never fails on data quality.
func Join(left, right []model.SourceRecord, key model.IDField) *JoinResult {
	// Index the right side by key, first occurrence wins.
	index := make(map[string]*model.SourceRecord, len(right))
	for i := range right {
		k := right[i].Identifier(key)
		if k == "" {
			continue
		}
		if _, ok := index[k]; !ok {
			index[k] = &right[i]
		}
	}

	res := &JoinResult{Rows: make([]JoinedRow, 0, len(left))}
	res.Summary.TotalRows = len(left)
	res.Summary.RowsWithID = make(map[model.Source]int, len(model.Sources))

	for _, l := range left {
		for _, s := range model.Sources {
			if l.CrossRef(s) != "" {
				res.Summary.RowsWithID[s]++
			}
		}

		row := JoinedRow{Key: l.Identifier(key), Left: l}

		if row.Key != "" {
			res.Summary.RowsWithKey++
			if r, ok := index[row.Key]; ok {
				row.Right = r
				row.NameMatch = NameKey(l.FullName) == NameKey(r.FullName)
				row.DateMatch = DateKey(l.BirthDate) == DateKey(r.BirthDate)
				row.Suspicious = !row.NameMatch || !row.DateMatch
				res.Summary.MatchedRows++
			}
		}

		res.Rows = append(res.Rows, row)
		if row.Suspicious {
			res.Suspicious = append(res.Suspicious, row)
		}
	}

	res.Summary.SuspiciousRows = len(res.Suspicious)
	if res.Summary.RowsWithKey > 0 {
		res.Summary.MatchRate = float64(res.Summary.MatchedRows) / float64(res.Summary.RowsWithKey)
	}

	zap.L().Info("join complete",
		zap.String("key", string(key)),
		zap.Int("total", res.Summary.TotalRows),
		zap.Int("with_key", res.Summary.RowsWithKey),
		zap.Int("matched", res.Summary.MatchedRows),
		zap.Float64("match_rate", res.Summary.MatchRate),
		zap.Int("suspicious", res.Summary.SuspiciousRows))

	return res
}

// SuspiciousRow is the flat export shape of one suspicious join row.
type SuspiciousRow struct {
	Key            string `csv:"key"`
	LeftSourceID   string `csv:"left_source_id"`
	LeftName       string `csv:"left_name"`
	LeftBirthDate  string `csv:"left_birth_date"`
	RightSourceID  string `csv:"right_source_id"`
	RightName      string `csv:"right_name"`
	RightBirthDate string `csv:"right_birth_date"`
	NameMatch      bool   `csv:"name_match"`
	DateMatch      bool   `csv:"date_match"`
}

// SuspiciousTable flattens the suspicious subset for tabular export.
func (res *JoinResult) SuspiciousTable() []SuspiciousRow {
	rows := make([]SuspiciousRow, 0, len(res.Suspicious))
	for _, jr := range res.Suspicious {
		row := SuspiciousRow{
			Key:           jr.Key,
			LeftSourceID:  jr.Left.SourceID,
			LeftName:      jr.Left.FullName,
			LeftBirthDate: jr.Left.BirthDate,
			NameMatch:     jr.NameMatch,
			DateMatch:     jr.DateMatch,
		}
		if jr.Right != nil {
			row.RightSourceID = jr.Right.SourceID
			row.RightName = jr.Right.FullName
			row.RightBirthDate = jr.Right.BirthDate
		}
		rows = append(rows, row)
	}
	return rows
}
