// Package model defines the data types shared across the registry pipeline:
// raw source records, canonical players, overrides, and audit reports.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Source identifies which upstream system a record came from.
type Source string

const (
	// SourcePrimary is the actively-curated fantasy platform catalog.
	// It has the richest identifier coverage and seeds canonical IDs.
	SourcePrimary Source = "primary"
	// SourceStats is the sports-statistics provider feed.
	SourceStats Source = "stats"
	// SourceLegacy is the historical index: large coverage, weak identifiers.
	SourceLegacy Source = "legacy"
)

// Sources lists all known sources in authority order (most authoritative first).
var Sources = []Source{SourcePrimary, SourceStats, SourceLegacy}

// ParseSource validates a source name from CLI flags or config.
func ParseSource(s string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourcePrimary:
		return SourcePrimary, nil
	case SourceStats:
		return SourceStats, nil
	case SourceLegacy:
		return SourceLegacy, nil
	}
	return "", eris.Errorf("model: unknown source %q (want primary, stats, or legacy)", s)
}

// IDField names an identifier column carried on a SourceRecord. Used to
// select the join key for the deterministic joiner and override remapping.
type IDField string

const (
	FieldSourceID  IDField = "source_id"
	FieldPrimaryID IDField = "primary_id"
	FieldStatsID   IDField = "stats_id"
	FieldLegacyID  IDField = "legacy_id"
)

// ParseIDField validates an identifier field name. An unknown field is a
// configuration error and fatal to the run.
func ParseIDField(s string) (IDField, error) {
	switch IDField(strings.ToLower(strings.TrimSpace(s))) {
	case FieldSourceID:
		return FieldSourceID, nil
	case FieldPrimaryID:
		return FieldPrimaryID, nil
	case FieldStatsID:
		return FieldStatsID, nil
	case FieldLegacyID:
		return FieldLegacyID, nil
	}
	return "", eris.Errorf("model: unknown identifier field %q", s)
}

// Source returns the source whose ID space the field names. FieldSourceID
// belongs to whatever source the record came from, so it reports false.
func (f IDField) Source() (Source, bool) {
	switch f {
	case FieldPrimaryID:
		return SourcePrimary, true
	case FieldStatsID:
		return SourceStats, true
	case FieldLegacyID:
		return SourceLegacy, true
	}
	return "", false
}

// SourceRecord is one row from one source. Immutable once read: the
// pipeline references records but never mutates them.
type SourceRecord struct {
	Source   Source `csv:"-" json:"source"`
	SourceID string `csv:"source_id" json:"source_id"`

	FullName  string `csv:"full_name" json:"full_name"`
	FirstName string `csv:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  string `csv:"last_name,omitempty" json:"last_name,omitempty"`
	Position  string `csv:"position,omitempty" json:"position,omitempty"`
	Team      string `csv:"team,omitempty" json:"team,omitempty"`
	BirthDate string `csv:"birth_date,omitempty" json:"birth_date,omitempty"`

	Height     string `csv:"height,omitempty" json:"height,omitempty"`
	Weight     string `csv:"weight,omitempty" json:"weight,omitempty"`
	College    string `csv:"college,omitempty" json:"college,omitempty"`
	Experience string `csv:"experience,omitempty" json:"experience,omitempty"`

	// Cross-references into the other sources' ID spaces, when the feed
	// carries them. Empty when unknown.
	PrimaryID string `csv:"primary_id,omitempty" json:"primary_id,omitempty"`
	StatsID   string `csv:"stats_id,omitempty" json:"stats_id,omitempty"`
	LegacyID  string `csv:"legacy_id,omitempty" json:"legacy_id,omitempty"`
}

// Identifier returns the record's value for the named identifier field.
// A record belonging to the field's own source answers with its
// source_id, so two sets can join on (say) primary_id even though the
// primary feed stores that ID in its source_id column.
func (r SourceRecord) Identifier(f IDField) string {
	switch f {
	case FieldSourceID:
		return strings.TrimSpace(r.SourceID)
	case FieldPrimaryID:
		return r.CrossRef(SourcePrimary)
	case FieldStatsID:
		return r.CrossRef(SourceStats)
	case FieldLegacyID:
		return r.CrossRef(SourceLegacy)
	}
	return ""
}

// CrossRef returns the identifier this record carries for the given
// source's ID space, including its own source_id.
func (r SourceRecord) CrossRef(s Source) string {
	switch s {
	case r.Source:
		return strings.TrimSpace(r.SourceID)
	case SourcePrimary:
		return strings.TrimSpace(r.PrimaryID)
	case SourceStats:
		return strings.TrimSpace(r.StatsID)
	case SourceLegacy:
		return strings.TrimSpace(r.LegacyID)
	}
	return ""
}
