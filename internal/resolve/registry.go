package resolve

import (
	"sort"

	"github.com/draftline/rosterlink/internal/model"
)

// Registry is the canonical player registry: every resolved player plus
// the alias index that maps each source's IDs onto them.
type Registry struct {
	Players map[string]*model.CanonicalPlayer
	Aliases *AliasIndex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Players: make(map[string]*model.CanonicalPlayer),
		Aliases: NewAliasIndex(),
	}
}

// Lookup resolves (source, sourceID) through the alias index to a
// canonical player, or nil when unbound.
func (r *Registry) Lookup(source model.Source, sourceID string) *model.CanonicalPlayer {
	canonicalID, ok := r.Aliases.Resolve(source, sourceID)
	if !ok {
		return nil
	}
	return r.Players[canonicalID]
}

// Get returns the player with the given canonical ID, or nil.
func (r *Registry) Get(canonicalID string) *model.CanonicalPlayer {
	return r.Players[canonicalID]
}

// Add registers a player and binds its source identifiers. Conflicting
// identifier binds are refused by the alias index and recorded there.
func (r *Registry) Add(p *model.CanonicalPlayer) {
	r.Players[p.CanonicalID] = p
	for source, id := range p.Identifiers {
		r.Aliases.Bind(source, id, p.CanonicalID)
	}
}

// CanonicalIDs returns all canonical IDs in sorted order.
func (r *Registry) CanonicalIDs() []string {
	ids := make([]string, 0, len(r.Players))
	for id := range r.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AliasMaps returns per-source copies of the alias bindings, keyed by
// source name. This is the serialized shape of the index.
func (r *Registry) AliasMaps() map[model.Source]map[string]string {
	out := make(map[model.Source]map[string]string, len(model.Sources))
	for _, s := range model.Sources {
		out[s] = r.Aliases.Map(s)
	}
	return out
}
