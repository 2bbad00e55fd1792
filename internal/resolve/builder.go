package resolve

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/model"
)

// BuildReport summarizes one registry build. Derived and read-only;
// regenerated on every run.
type BuildReport struct {
	PlayersCreated int            `json:"players_created" yaml:"players_created"`
	StubsCreated   int            `json:"stubs_created" yaml:"stubs_created"`
	Enriched       int            `json:"enriched" yaml:"enriched"`
	NameFallbacks  int            `json:"name_fallbacks" yaml:"name_fallbacks"`
	Duplicates     int            `json:"duplicates" yaml:"duplicates"`
	Dropped        int            `json:"dropped" yaml:"dropped"`
	ConflictBinds  int            `json:"conflict_binds" yaml:"conflict_binds"`
	PassCounts     map[string]int `json:"pass_counts" yaml:"pass_counts"`
}

// Builder bootstraps the canonical registry from ordered per-source
// record sets. Passes run most-authoritative first; later passes depend
// on the alias bindings created by earlier ones, so the order is a
// contract, not an optimization.
type Builder struct {
	reg *Registry

	// nameIndex maps NameKey to canonical_id for the name-only fallback
	// in pass 3. Only pass 1 writes it; first writer wins.
	nameIndex map[string]string

	report BuildReport
}

// NewBuilder returns a builder over a fresh registry.
func NewBuilder() *Builder {
	return &Builder{
		reg:       NewRegistry(),
		nameIndex: make(map[string]string),
		report:    BuildReport{PassCounts: make(map[string]int)},
	}
}

// Build runs the three passes and returns the populated registry and
// its build report. Input slices may be nil or empty; records with no
// usable identifier and no name are dropped and counted, never fatal.
func (b *Builder) Build(primary, stats, legacy []model.SourceRecord) (*Registry, *BuildReport) {
	log := zap.L().With(zap.String("component", "registry_builder"))

	log.Info("pass 1: primary platform seed", zap.Int("records", len(primary)))
	b.passPrimary(primary)
	log.Info("pass 1 complete",
		zap.Int("players", b.report.PlayersCreated),
		zap.Int("dropped", b.report.Dropped))

	log.Info("pass 2: stats provider enrichment", zap.Int("records", len(stats)))
	b.passStats(stats)
	log.Info("pass 2 complete",
		zap.Int("enriched", b.report.Enriched),
		zap.Int("players", len(b.reg.Players)))

	log.Info("pass 3: legacy index fill", zap.Int("records", len(legacy)))
	b.passLegacy(legacy)

	b.report.ConflictBinds = len(b.reg.Aliases.Conflicts())
	log.Info("registry build complete",
		zap.Int("players", len(b.reg.Players)),
		zap.Int("stubs", b.report.StubsCreated),
		zap.Int("name_fallbacks", b.report.NameFallbacks),
		zap.Int("dropped", b.report.Dropped),
		zap.Int("conflict_binds", b.report.ConflictBinds))

	return b.reg, &b.report
}

// passPrimary creates one canonical player per primary record with a
// non-empty source_id, using that ID directly as the canonical ID.
func (b *Builder) passPrimary(records []model.SourceRecord) {
	for _, rec := range records {
		id := rec.Identifier(model.FieldSourceID)
		if id == "" {
			b.drop(rec)
			continue
		}
		if b.reg.Players[id] != nil {
			// First record for a source ID wins, same as the alias index.
			b.report.Duplicates++
			zap.L().Warn("duplicate primary record skipped",
				zap.String("source_id", id),
				zap.String("name", rec.FullName))
			continue
		}

		p := model.NewCanonicalPlayer(id, rec)
		b.reg.Players[id] = p
		b.reg.Aliases.Bind(rec.Source, id, id)
		b.bindCrossRefs(p, rec)

		if key := NameKey(rec.FullName); key != "" {
			if _, exists := b.nameIndex[key]; !exists {
				b.nameIndex[key] = id
			}
		}

		b.report.PlayersCreated++
		b.report.PassCounts["primary"]++
	}
}

// passStats attempts identifier lookup in priority order (primary ID,
// then stats ID, then legacy ID), enriching on a hit and creating a new
// player on a miss when the record carries a usable identifier.
func (b *Builder) passStats(records []model.SourceRecord) {
	for _, rec := range records {
		if p := b.lookupByIdentifiers(rec); p != nil {
			b.merge(p, rec)
			b.report.Enriched++
			b.report.PassCounts["stats"]++
			continue
		}

		canonicalID := ""
		switch {
		case rec.CrossRef(model.SourcePrimary) != "":
			// The record carries a primary-platform ID the primary feed
			// never surfaced; it still anchors the canonical ID.
			canonicalID = rec.CrossRef(model.SourcePrimary)
		case rec.Identifier(model.FieldSourceID) != "":
			canonicalID = stubID(rec)
			b.report.StubsCreated++
		default:
			b.drop(rec)
			continue
		}

		p := model.NewCanonicalPlayer(canonicalID, rec)
		b.reg.Players[canonicalID] = p
		b.bindCrossRefs(p, rec)
		b.report.PlayersCreated++
		b.report.PassCounts["stats"]++
	}
}

// passLegacy tries identifier lookup first, then the pass-1 name index,
// and finally synthesizes a source-only stub.
func (b *Builder) passLegacy(records []model.SourceRecord) {
	for _, rec := range records {
		if p := b.lookupByIdentifiers(rec); p != nil {
			b.merge(p, rec)
			b.report.Enriched++
			b.report.PassCounts["legacy"]++
			continue
		}

		if key := NameKey(rec.FullName); key != "" {
			if p := b.reg.Players[b.nameIndex[key]]; p != nil {
				b.merge(p, rec)
				b.report.NameFallbacks++
				b.report.PassCounts["legacy"]++
				continue
			}
		}

		if rec.Identifier(model.FieldSourceID) == "" {
			b.drop(rec)
			continue
		}

		canonicalID := stubID(rec)
		p := model.NewCanonicalPlayer(canonicalID, rec)
		b.reg.Players[canonicalID] = p
		b.bindCrossRefs(p, rec)
		b.report.StubsCreated++
		b.report.PlayersCreated++
		b.report.PassCounts["legacy"]++
	}
}

// lookupByIdentifiers resolves a record against already-bound aliases
// in fixed priority order: primary, stats, legacy.
func (b *Builder) lookupByIdentifiers(rec model.SourceRecord) *model.CanonicalPlayer {
	for _, source := range model.Sources {
		if id := rec.CrossRef(source); id != "" {
			if p := b.reg.Lookup(source, id); p != nil {
				return p
			}
		}
	}
	return nil
}

// merge enriches an existing player with a record's fields and binds
// any identifiers the record carries that are still unbound.
func (b *Builder) merge(p *model.CanonicalPlayer, rec model.SourceRecord) {
	p.Enrich(rec)
	b.bindCrossRefs(p, rec)
}

// bindCrossRefs binds every identifier a record carries, first-write-wins
// in both the alias index and the player's identifier map.
func (b *Builder) bindCrossRefs(p *model.CanonicalPlayer, rec model.SourceRecord) {
	for _, source := range model.Sources {
		id := rec.CrossRef(source)
		if id == "" {
			continue
		}
		if b.reg.Aliases.Bind(source, id, p.CanonicalID) {
			p.SetIdentifier(source, id)
		}
	}
}

func (b *Builder) drop(rec model.SourceRecord) {
	b.report.Dropped++
	zap.L().Debug("record dropped: no usable identifier",
		zap.String("source", string(rec.Source)),
		zap.String("name", rec.FullName))
}

// stubID synthesizes the canonical ID for a source-only stub.
func stubID(rec model.SourceRecord) string {
	return fmt.Sprintf("%s:%s", rec.Source, rec.SourceID)
}
