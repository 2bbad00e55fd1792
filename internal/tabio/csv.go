// Package tabio reads and writes the tabular artifacts of the pipeline:
// per-source record sets and override tables (CSV), review workbooks
// (XLSX), and the registry document (JSON or YAML).
package tabio

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/model"
	"github.com/draftline/rosterlink/internal/resolve"
)

// ReadRecords loads one source's record set from a CSV file. The
// source_id and full_name columns are required, plus any extra columns
// the caller names (typically the selected join key); a missing column
// is a schema mismatch and fatal to the run.
func ReadRecords(path string, source model.Source, extraColumns ...string) ([]model.SourceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tabio: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		return nil, eris.Wrapf(err, "tabio: read header of %s", path)
	}
	required := append([]string{"source_id", "full_name"}, extraColumns...)
	if err := requireColumns(dec.Header(), required...); err != nil {
		return nil, eris.Wrapf(err, "tabio: %s", path)
	}

	var records []model.SourceRecord
	for {
		var rec model.SourceRecord
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(err, "tabio: decode row in %s", path)
		}
		rec.Source = source
		records = append(records, rec)
	}

	zap.L().Debug("records loaded",
		zap.String("path", path),
		zap.String("source", string(source)),
		zap.Int("rows", len(records)))
	return records, nil
}

// ReadOverridesCSV loads a reviewer's override table from CSV. Rows
// without a confirmed identifier are skipped: an empty decision column
// means the reviewer left the case open.
func ReadOverridesCSV(path string, source model.Source) ([]model.Override, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tabio: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		return nil, eris.Wrapf(err, "tabio: read header of %s", path)
	}
	if err := requireColumns(dec.Header(), "original_identifier", "confirmed_identifier"); err != nil {
		return nil, eris.Wrapf(err, "tabio: %s", path)
	}

	var overrides []model.Override
	for {
		var ov model.Override
		if err := dec.Decode(&ov); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(err, "tabio: decode override in %s", path)
		}
		if strings.TrimSpace(ov.ConfirmedID) == "" {
			continue
		}
		ov.Source = source
		ov.OriginalID = strings.TrimSpace(ov.OriginalID)
		ov.ConfirmedID = strings.TrimSpace(ov.ConfirmedID)
		overrides = append(overrides, ov)
	}
	return overrides, nil
}

// WriteSuspicious writes the suspicious-match subset as CSV.
func WriteSuspicious(path string, rows []resolve.SuspiciousRow) error {
	return writeCSV(path, rows)
}

// MatchRow is the flat export shape of one fuzzy-match outcome.
type MatchRow struct {
	TargetSourceID string  `csv:"target_source_id"`
	TargetName     string  `csv:"target_name"`
	State          string  `csv:"state"`
	CanonicalID    string  `csv:"canonical_id"`
	MatchedName    string  `csv:"matched_name"`
	Similarity     float64 `csv:"similarity"`
	Bonus          float64 `csv:"bonus"`
	FinalScore     float64 `csv:"final_score"`
}

// MatchTable flattens matcher results for tabular export. Auto-accepted
// rows carry their winning candidate; unresolved rows carry state only.
func MatchTable(results []resolve.MatchResult) []MatchRow {
	rows := make([]MatchRow, 0, len(results))
	for _, res := range results {
		row := MatchRow{
			TargetSourceID: res.Record.SourceID,
			TargetName:     res.Record.FullName,
			State:          string(res.State),
		}
		if res.Best != nil {
			row.CanonicalID = res.Best.CanonicalID
			row.MatchedName = res.Best.Name
			row.Similarity = res.Best.Similarity
			row.Bonus = res.Best.Bonus
			row.FinalScore = res.Best.FinalScore
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteMatches writes fuzzy-match outcomes as CSV.
func WriteMatches(path string, rows []MatchRow) error {
	return writeCSV(path, rows)
}

func writeCSV[T any](path string, rows []T) error {
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrapf(err, "tabio: marshal csv for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "tabio: write %s", path)
	}
	return nil
}

// requireColumns verifies that every required column is present in the
// header. A missing column is a configuration error, not a data issue.
func requireColumns(header []string, required ...string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	for _, col := range required {
		if _, ok := present[col]; !ok {
			return eris.Errorf("required column %q not found", col)
		}
	}
	return nil
}
