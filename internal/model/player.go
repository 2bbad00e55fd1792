package model

// CanonicalPlayer is the merged identity for one real-world athlete.
// Created by the Registry Builder's first pass, or promoted from a
// source-only stub in a later pass. Never deleted: stale entries
// persist as inert history.
type CanonicalPlayer struct {
	// CanonicalID is stable once assigned. It is the primary source's ID
	// when one exists, else a synthesized "{source}:{source_id}" stub key.
	CanonicalID string `json:"canonical_id" yaml:"canonical_id"`

	DisplayName string `json:"display_name" yaml:"display_name"`
	Position    string `json:"position,omitempty" yaml:"position,omitempty"`
	Team        string `json:"team,omitempty" yaml:"team,omitempty"`
	BirthDate   string `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`

	Height     string `json:"height,omitempty" yaml:"height,omitempty"`
	Weight     string `json:"weight,omitempty" yaml:"weight,omitempty"`
	College    string `json:"college,omitempty" yaml:"college,omitempty"`
	Experience string `json:"experience,omitempty" yaml:"experience,omitempty"`

	// Identifiers maps source name to that source's ID for this player.
	// Invariant: at least one entry is non-empty at all times.
	Identifiers map[Source]string `json:"identifiers" yaml:"identifiers"`
}

// NewCanonicalPlayer creates a player seeded from one source record.
func NewCanonicalPlayer(canonicalID string, rec SourceRecord) *CanonicalPlayer {
	p := &CanonicalPlayer{
		CanonicalID: canonicalID,
		DisplayName: rec.FullName,
		Position:    rec.Position,
		Team:        rec.Team,
		BirthDate:   rec.BirthDate,
		Height:      rec.Height,
		Weight:      rec.Weight,
		College:     rec.College,
		Experience:  rec.Experience,
		Identifiers: make(map[Source]string, len(Sources)),
	}
	if rec.SourceID != "" {
		p.Identifiers[rec.Source] = rec.SourceID
	}
	return p
}

// Enrich fills empty fields from rec. Populated fields are never
// overwritten and null/empty incoming values never clobber anything
// (last-write-wins per pass applies only to fields still empty).
func (p *CanonicalPlayer) Enrich(rec SourceRecord) {
	fill := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
		}
	}
	fill(&p.DisplayName, rec.FullName)
	fill(&p.Position, rec.Position)
	fill(&p.Team, rec.Team)
	fill(&p.BirthDate, rec.BirthDate)
	fill(&p.Height, rec.Height)
	fill(&p.Weight, rec.Weight)
	fill(&p.College, rec.College)
	fill(&p.Experience, rec.Experience)
}

// Identifier returns this player's ID in the given source's space, or "".
func (p *CanonicalPlayer) Identifier(s Source) string {
	if p.Identifiers == nil {
		return ""
	}
	return p.Identifiers[s]
}

// SetIdentifier records a source ID if that slot is still empty.
// Returns false when the slot already holds a different value.
func (p *CanonicalPlayer) SetIdentifier(s Source, id string) bool {
	if id == "" {
		return false
	}
	if p.Identifiers == nil {
		p.Identifiers = make(map[Source]string, len(Sources))
	}
	if existing, ok := p.Identifiers[s]; ok && existing != "" {
		return existing == id
	}
	p.Identifiers[s] = id
	return true
}

// ForceIdentifier rebinds a source ID unconditionally. Only the
// Override Applicator may use this.
func (p *CanonicalPlayer) ForceIdentifier(s Source, id string) {
	if p.Identifiers == nil {
		p.Identifiers = make(map[Source]string, len(Sources))
	}
	p.Identifiers[s] = id
}
