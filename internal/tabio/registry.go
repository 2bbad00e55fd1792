package tabio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/draftline/rosterlink/internal/model"
	"github.com/draftline/rosterlink/internal/resolve"
)

// RegistryDoc is the serialized registry: every canonical player, the
// three alias maps, and the build report that produced them. Output is
// deterministic (map keys are emitted sorted) so re-serializing an
// unchanged registry is byte-for-byte stable.
type RegistryDoc struct {
	Players map[string]*model.CanonicalPlayer  `json:"players" yaml:"players"`
	Aliases map[model.Source]map[string]string `json:"aliases" yaml:"aliases"`
	Report  *resolve.BuildReport               `json:"report,omitempty" yaml:"report,omitempty"`
}

// NewRegistryDoc snapshots a registry into its document form.
func NewRegistryDoc(reg *resolve.Registry, report *resolve.BuildReport) *RegistryDoc {
	return &RegistryDoc{
		Players: reg.Players,
		Aliases: reg.AliasMaps(),
		Report:  report,
	}
}

// Registry reconstructs the in-memory registry from a document. The
// document is trusted: bindings are installed directly rather than
// re-run through conflict detection.
func (d *RegistryDoc) Registry() *resolve.Registry {
	reg := resolve.NewRegistry()
	for id, p := range d.Players {
		if p.Identifiers == nil {
			p.Identifiers = make(map[model.Source]string)
		}
		if p.CanonicalID == "" {
			p.CanonicalID = id
		}
		reg.Players[id] = p
	}
	for source, m := range d.Aliases {
		for sourceID, canonicalID := range m {
			reg.Aliases.Rebind(source, sourceID, canonicalID)
		}
	}
	return reg
}

// WriteRegistry writes the registry document. Format follows the file
// extension: .yaml/.yml produce YAML, everything else JSON.
func WriteRegistry(path string, doc *RegistryDoc) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	}
	if err != nil {
		return eris.Wrapf(err, "tabio: marshal registry for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "tabio: write registry %s", path)
	}
	return nil
}

// ReadRegistry loads a registry document, detecting format from the
// file extension.
func ReadRegistry(path string) (*RegistryDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tabio: read registry %s", path)
	}

	var doc RegistryDoc
	if isYAML(path) {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "tabio: parse registry %s", path)
	}

	if doc.Players == nil {
		doc.Players = make(map[string]*model.CanonicalPlayer)
	}
	if doc.Aliases == nil {
		doc.Aliases = make(map[model.Source]map[string]string)
	}
	return &doc, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
