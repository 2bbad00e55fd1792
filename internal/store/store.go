// Package store persists registry snapshots, audit summaries, and
// applied overrides as an append-only trail. Persistence is optional;
// the resolution pipeline itself is pure in-memory.
package store

import (
	"context"

	"github.com/draftline/rosterlink/internal/model"
	"github.com/draftline/rosterlink/internal/resolve"
)

// Store defines the persistence interface for registry artifacts.
type Store interface {
	// SaveRegistry snapshots the registry and its build report,
	// returning the snapshot run ID.
	SaveRegistry(ctx context.Context, reg *resolve.Registry, report *resolve.BuildReport) (string, error)

	// RecordAudit appends one audit summary under a named stage
	// ("audit", "override", ...).
	RecordAudit(ctx context.Context, stage string, summary model.AuditSummary) (string, error)

	// RecordOverrides appends consumed overrides to the audit trail.
	RecordOverrides(ctx context.Context, runID string, overrides []model.Override) error

	// CountPlayers reports how many canonical players the latest
	// snapshot holds.
	CountPlayers(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
