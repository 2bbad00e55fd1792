package model

// Override is a human-confirmed correction produced by review. It is
// consumed once by the Override Applicator and persisted alongside the
// registry as an audit record.
type Override struct {
	// Source names the ID space this correction applies to.
	Source Source `csv:"-" json:"source"`
	// OriginalID is the identifier the automated pipeline used or attempted.
	OriginalID string `csv:"original_identifier" json:"original_identifier"`
	// ConfirmedID is the corrected identifier that should be bound instead.
	ConfirmedID string `csv:"confirmed_identifier" json:"confirmed_identifier"`
	// Notes carries the reviewer's free-text annotation, if any.
	Notes string `csv:"notes,omitempty" json:"notes,omitempty"`
}

// AuditSummary is the scalar summary produced by every join run.
// Derived, read-only: regenerated on every run, never hand-edited.
type AuditSummary struct {
	TotalRows      int     `json:"total_rows" yaml:"total_rows"`
	RowsWithKey    int     `json:"rows_with_key" yaml:"rows_with_key"`
	MatchedRows    int     `json:"matched_rows" yaml:"matched_rows"`
	MatchRate      float64 `json:"match_rate" yaml:"match_rate"`
	SuspiciousRows int     `json:"suspicious_rows" yaml:"suspicious_rows"`
	ConflictBinds  int     `json:"conflict_binds,omitempty" yaml:"conflict_binds,omitempty"`

	// RowsWithID counts left rows carrying an identifier in each source's
	// ID space, a row's own source_id included.
	RowsWithID map[Source]int `json:"rows_with_id" yaml:"rows_with_id"`
}

// AuditReport compares the join before and after overrides were applied.
type AuditReport struct {
	Before         AuditSummary `json:"before" yaml:"before"`
	After          AuditSummary `json:"after" yaml:"after"`
	RowsChanged    int          `json:"rows_changed" yaml:"rows_changed"`
	NewlyMatched   int          `json:"newly_matched" yaml:"newly_matched"`
	StillSuspect   int          `json:"still_suspicious" yaml:"still_suspicious"`
	OverridesTotal int          `json:"overrides_total" yaml:"overrides_total"`
}
