package resolve

import (
	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/model"
)

// WorkbookRow is one ambiguous case prepared for human adjudication:
// the record under review plus its ranked candidates from the full
// reference pool. The decision and notes columns stay empty here; the
// workbook writer adds them for the reviewer to fill in.
type WorkbookRow struct {
	Source     model.Source
	SourceID   string
	FullName   string
	BirthDate  string
	Position   string
	State      MatchState
	Candidates []Candidate
}

// BuildWorkbook scores each suspicious or needs-review record against
// the full reference pool, gated by DateKey when available, else by
// position equality, falling back to the unfiltered pool when gating
// eliminates everything. Performs no registry writes: this is purely an
// evidence-presentation step.
func BuildWorkbook(records []model.SourceRecord, pool []PoolEntry, policy MatchPolicy) []WorkbookRow {
	if policy.TopN <= 0 {
		policy.TopN = DefaultMatchPolicy().TopN
	}

	rows := make([]WorkbookRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, reviewRow(rec, pool, policy.TopN))
	}

	zap.L().Info("review workbook built",
		zap.Int("rows", len(rows)),
		zap.Int("top_n", policy.TopN))
	return rows
}

// WorkbookFromResults converts unresolved matcher outcomes into
// workbook rows, rescoring against the full pool rather than only the
// blocked subset. Each row keeps its matcher terminal state so the
// reviewer can tell a near-tie from a record with no block at all.
func WorkbookFromResults(results []MatchResult, pool []PoolEntry, policy MatchPolicy) []WorkbookRow {
	if policy.TopN <= 0 {
		policy.TopN = DefaultMatchPolicy().TopN
	}

	var rows []WorkbookRow
	for _, res := range results {
		if res.State != StateNeedsReview && res.State != StateUnmatchedNoBlock {
			continue
		}
		row := reviewRow(res.Record, pool, policy.TopN)
		row.State = res.State
		rows = append(rows, row)
	}

	zap.L().Info("review workbook built",
		zap.Int("rows", len(rows)),
		zap.Int("top_n", policy.TopN))
	return rows
}

func reviewRow(rec model.SourceRecord, pool []PoolEntry, topN int) WorkbookRow {
	row := WorkbookRow{
		Source:    rec.Source,
		SourceID:  rec.SourceID,
		FullName:  rec.FullName,
		BirthDate: rec.BirthDate,
		Position:  rec.Position,
		State:     StateNeedsReview,
	}

	targetKey := NameKey(rec.FullName)
	dateKey := DateKey(rec.BirthDate)

	gated := gatePool(pool, dateKey, rec.Position)
	if len(gated) == 0 {
		gated = pool
	}

	candidates := make([]Candidate, 0, len(gated))
	for _, e := range gated {
		sim, bonus, final := Score(targetKey, e.NameKey,
			dateKey != "" && dateKey == e.DateKey,
			positionsEqual(rec.Position, e.Position))
		candidates = append(candidates, Candidate{
			CanonicalID: e.CanonicalID,
			Name:        e.Name,
			Similarity:  sim,
			Bonus:       bonus,
			FinalScore:  final,
		})
	}
	rankCandidates(candidates)

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	row.Candidates = candidates
	return row
}

// gatePool restricts the pool by DateKey when the record has one, else
// by position equality. Returns nil when the gate eliminates everything
// so the caller can fall back to the unfiltered pool.
func gatePool(pool []PoolEntry, dateKey, position string) []PoolEntry {
	var out []PoolEntry
	switch {
	case dateKey != "":
		for _, e := range pool {
			if e.DateKey == dateKey {
				out = append(out, e)
			}
		}
	case position != "":
		for _, e := range pool {
			if positionsEqual(position, e.Position) {
				out = append(out, e)
			}
		}
	}
	return out
}
