package resolve

import (
	"sort"

	"github.com/draftline/rosterlink/internal/model"
)

// Conflict records an attempted bind of a source ID that was already
// bound to a different canonical player. Conflicts are never resolved
// automatically; they surface through the audit summary.
type Conflict struct {
	Source    model.Source `json:"source"`
	SourceID  string       `json:"source_id"`
	Existing  string       `json:"existing_canonical_id"`
	Attempted string       `json:"attempted_canonical_id"`
}

// AliasIndex maps, per source, source_id to canonical_id. Binding is
// first-write-wins: once a source ID is bound, later passes may not
// silently rebind it. Only an explicit override may, via Rebind.
// Single-writer: the builder mutates it in one linearizable pass order.
type AliasIndex struct {
	bySource  map[model.Source]map[string]string
	conflicts []Conflict
}

// NewAliasIndex returns an empty index with all source maps allocated.
func NewAliasIndex() *AliasIndex {
	by := make(map[model.Source]map[string]string, len(model.Sources))
	for _, s := range model.Sources {
		by[s] = make(map[string]string)
	}
	return &AliasIndex{bySource: by}
}

// Bind performs an atomic bind-if-absent of (source, sourceID) to
// canonicalID. Returns true if the binding now points at canonicalID
// (newly bound or already identical). A bind against an existing
// different target leaves the first binding unchanged, records a
// conflict, and returns false.
func (ai *AliasIndex) Bind(source model.Source, sourceID, canonicalID string) bool {
	if sourceID == "" || canonicalID == "" {
		return false
	}
	m := ai.bySource[source]
	if m == nil {
		m = make(map[string]string)
		ai.bySource[source] = m
	}
	if existing, ok := m[sourceID]; ok {
		if existing == canonicalID {
			return true
		}
		ai.conflicts = append(ai.conflicts, Conflict{
			Source:    source,
			SourceID:  sourceID,
			Existing:  existing,
			Attempted: canonicalID,
		})
		return false
	}
	m[sourceID] = canonicalID
	return true
}

// Rebind unconditionally points (source, sourceID) at canonicalID.
// Reserved for the Override Applicator; everything else must use Bind.
func (ai *AliasIndex) Rebind(source model.Source, sourceID, canonicalID string) {
	if sourceID == "" || canonicalID == "" {
		return
	}
	m := ai.bySource[source]
	if m == nil {
		m = make(map[string]string)
		ai.bySource[source] = m
	}
	m[sourceID] = canonicalID
}

// Resolve looks up the canonical ID bound to (source, sourceID).
func (ai *AliasIndex) Resolve(source model.Source, sourceID string) (string, bool) {
	if sourceID == "" {
		return "", false
	}
	id, ok := ai.bySource[source][sourceID]
	return id, ok
}

// Conflicts returns the binds that were refused because the source ID
// was already bound elsewhere.
func (ai *AliasIndex) Conflicts() []Conflict {
	return ai.conflicts
}

// Len reports the number of bindings for one source.
func (ai *AliasIndex) Len(source model.Source) int {
	return len(ai.bySource[source])
}

// Map returns a copy of one source's bindings.
func (ai *AliasIndex) Map(source model.Source) map[string]string {
	out := make(map[string]string, len(ai.bySource[source]))
	for k, v := range ai.bySource[source] {
		out[k] = v
	}
	return out
}

// CanonicalIDs returns the sorted set of canonical IDs reachable from
// any alias. Used by tests and the store snapshot.
func (ai *AliasIndex) CanonicalIDs() []string {
	seen := make(map[string]struct{})
	for _, m := range ai.bySource {
		for _, id := range m {
			seen[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
