package resolve

import (
	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/model"
)

// RemapRecords returns a copy of records with every identifier that
// equals an override's original redirected to the confirmed value.
// Pure: the input slice is never mutated. Idempotent: once remapped, a
// record no longer carries the original identifier, so a second
// application changes nothing.
func RemapRecords(records []model.SourceRecord, key model.IDField, overrides []model.Override) ([]model.SourceRecord, int) {
	remap := make(map[string]string, len(overrides))
	for _, ov := range overrides {
		if ov.OriginalID == "" || ov.ConfirmedID == "" || ov.OriginalID == ov.ConfirmedID {
			continue
		}
		remap[ov.OriginalID] = ov.ConfirmedID
	}

	out := make([]model.SourceRecord, len(records))
	copy(out, records)

	changed := 0
	for i := range out {
		confirmed, ok := remap[out[i].Identifier(key)]
		if !ok {
			continue
		}
		setIdentifier(&out[i], key, confirmed)
		changed++
	}
	return out, changed
}

// ApplyResult carries everything an override run produces: the remapped
// left table, the re-run join, and the before/after audit report.
type ApplyResult struct {
	Records []model.SourceRecord
	Join    *JoinResult
	Report  model.AuditReport
}

// ApplyOverrides merges human-confirmed corrections on top of the
// automated decisions: it rebinds the affected alias mappings, remaps
// the left table, re-runs the deterministic join, and regenerates the
// audit report. Applying the same override set twice yields an
// identical registry and report.
func ApplyOverrides(reg *Registry, overrides []model.Override, left, right []model.SourceRecord, key model.IDField) *ApplyResult {
	log := zap.L().With(zap.String("component", "override_applicator"))

	before := Join(left, right, key)

	for _, ov := range overrides {
		applyToRegistry(reg, ov)
	}

	remapped, changed := RemapRecords(left, key, overrides)
	after := Join(remapped, right, key)

	report := model.AuditReport{
		Before:         before.Summary,
		After:          after.Summary,
		RowsChanged:    changed,
		NewlyMatched:   after.Summary.MatchedRows - before.Summary.MatchedRows,
		StillSuspect:   after.Summary.SuspiciousRows,
		OverridesTotal: len(overrides),
	}

	log.Info("overrides applied",
		zap.Int("overrides", len(overrides)),
		zap.Int("rows_changed", changed),
		zap.Int("newly_matched", report.NewlyMatched),
		zap.Int("still_suspicious", report.StillSuspect))

	return &ApplyResult{Records: remapped, Join: after, Report: report}
}

// applyToRegistry rebinds one override in the alias index: lookups of
// the confirmed identifier resolve to whatever the original resolved
// to. The original binding is kept as inert history; players are never
// deleted. Re-applying the same override is a no-op.
func applyToRegistry(reg *Registry, ov model.Override) {
	if ov.OriginalID == "" || ov.ConfirmedID == "" {
		return
	}

	canonicalID, ok := reg.Aliases.Resolve(ov.Source, ov.OriginalID)
	if !ok {
		// The automated pipeline never bound the original; nothing to move.
		zap.L().Warn("override references unbound identifier",
			zap.String("source", string(ov.Source)),
			zap.String("original", ov.OriginalID),
			zap.String("confirmed", ov.ConfirmedID))
		return
	}

	reg.Aliases.Rebind(ov.Source, ov.ConfirmedID, canonicalID)
	if p := reg.Players[canonicalID]; p != nil {
		p.ForceIdentifier(ov.Source, ov.ConfirmedID)
	}
}

// setIdentifier writes the named identifier field, mirroring the
// field-to-column mapping that Identifier reads.
func setIdentifier(rec *model.SourceRecord, key model.IDField, value string) {
	var target model.Source
	switch key {
	case model.FieldSourceID:
		rec.SourceID = value
		return
	case model.FieldPrimaryID:
		target = model.SourcePrimary
	case model.FieldStatsID:
		target = model.SourceStats
	case model.FieldLegacyID:
		target = model.SourceLegacy
	default:
		return
	}

	if rec.Source == target {
		rec.SourceID = value
		return
	}
	switch target {
	case model.SourcePrimary:
		rec.PrimaryID = value
	case model.SourceStats:
		rec.StatsID = value
	case model.SourceLegacy:
		rec.LegacyID = value
	}
}
