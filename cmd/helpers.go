package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/draftline/rosterlink/internal/model"
	"github.com/draftline/rosterlink/internal/resolve"
	"github.com/draftline/rosterlink/internal/tabio"
)

// loadJoinInputs reads the two record sets and validates the join key.
// An unknown source or key name, or a table missing the key's column,
// is a configuration error and fatal.
func loadJoinInputs(leftPath, leftSource, rightPath, rightSource, key string) ([]model.SourceRecord, []model.SourceRecord, model.IDField, error) {
	ls, err := model.ParseSource(leftSource)
	if err != nil {
		return nil, nil, "", err
	}
	rs, err := model.ParseSource(rightSource)
	if err != nil {
		return nil, nil, "", err
	}
	field, err := model.ParseIDField(key)
	if err != nil {
		return nil, nil, "", err
	}

	left, err := tabio.ReadRecords(leftPath, ls, joinKeyColumns(ls, field)...)
	if err != nil {
		return nil, nil, "", eris.Wrap(err, "read left records")
	}
	right, err := tabio.ReadRecords(rightPath, rs, joinKeyColumns(rs, field)...)
	if err != nil {
		return nil, nil, "", eris.Wrap(err, "read right records")
	}
	return left, right, field, nil
}

// joinKeyColumns names the extra column a table must carry for the
// selected join key. A table from the key's own source stores that ID
// in source_id, which is always required, so no extra column is needed.
func joinKeyColumns(source model.Source, key model.IDField) []string {
	if keySource, ok := key.Source(); ok && keySource != source {
		return []string{string(key)}
	}
	return nil
}

// loadRegistryPool reads a registry document and flattens it into the
// fuzzy-matching reference pool.
func loadRegistryPool(path string) (*resolve.Registry, []resolve.PoolEntry, error) {
	doc, err := tabio.ReadRegistry(path)
	if err != nil {
		return nil, nil, err
	}
	reg := doc.Registry()
	return reg, resolve.PoolFromRegistry(reg), nil
}

// matchPolicy builds the gated-matching policy from configuration.
func matchPolicy() resolve.MatchPolicy {
	p := resolve.DefaultMatchPolicy()
	if cfg != nil {
		if cfg.Match.AcceptThreshold > 0 {
			p.AcceptThreshold = cfg.Match.AcceptThreshold
		}
		if cfg.Match.MinMargin > 0 {
			p.MinMargin = cfg.Match.MinMargin
		}
		if cfg.Match.ReviewTopN > 0 {
			p.TopN = cfg.Match.ReviewTopN
		}
	}
	return p
}

// readOverrides picks the override reader by file extension: review
// workbooks are XLSX, exported tables are CSV.
func readOverrides(path string, source model.Source) ([]model.Override, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return tabio.ReadOverridesXLSX(path, source)
	default:
		return tabio.ReadOverridesCSV(path, source)
	}
}
