package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/draftline/rosterlink/internal/model"
	"github.com/draftline/rosterlink/internal/resolve"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS registry_runs (
	id         TEXT PRIMARY KEY,
	players    INTEGER NOT NULL,
	report     TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS players (
	canonical_id TEXT PRIMARY KEY,
	run_id       TEXT NOT NULL REFERENCES registry_runs(id),
	doc          TEXT NOT NULL,
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS aliases (
	source       TEXT NOT NULL,
	source_id    TEXT NOT NULL,
	canonical_id TEXT NOT NULL,
	run_id       TEXT NOT NULL REFERENCES registry_runs(id),
	PRIMARY KEY (source, source_id)
);

CREATE TABLE IF NOT EXISTS audit_runs (
	id         TEXT PRIMARY KEY,
	stage      TEXT NOT NULL,
	summary    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS overrides (
	id           TEXT PRIMARY KEY,
	run_id       TEXT,
	source       TEXT NOT NULL,
	original_id  TEXT NOT NULL,
	confirmed_id TEXT NOT NULL,
	notes        TEXT,
	applied_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_aliases_canonical ON aliases(canonical_id);
CREATE INDEX IF NOT EXISTS idx_audit_runs_stage ON audit_runs(stage);
CREATE INDEX IF NOT EXISTS idx_overrides_source ON overrides(source, original_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRegistry writes the snapshot in one transaction: a run row, an
// upsert per player, and a full replace of the alias rows.
func (s *SQLiteStore) SaveRegistry(ctx context.Context, reg *resolve.Registry, report *resolve.BuildReport) (string, error) {
	runID := uuid.New().String()

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal report")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO registry_runs (id, players, report, created_at) VALUES (?, ?, ?, ?)`,
		runID, len(reg.Players), string(reportJSON), time.Now().UTC(),
	); err != nil {
		return "", eris.Wrap(err, "sqlite: insert registry run")
	}

	for _, canonicalID := range reg.CanonicalIDs() {
		doc, err := json.Marshal(reg.Players[canonicalID])
		if err != nil {
			return "", eris.Wrapf(err, "sqlite: marshal player %s", canonicalID)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO players (canonical_id, run_id, doc, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT (canonical_id) DO UPDATE SET run_id = excluded.run_id,
			     doc = excluded.doc, updated_at = excluded.updated_at`,
			canonicalID, runID, string(doc), time.Now().UTC(),
		); err != nil {
			return "", eris.Wrapf(err, "sqlite: upsert player %s", canonicalID)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM aliases`); err != nil {
		return "", eris.Wrap(err, "sqlite: clear aliases")
	}
	for source, m := range reg.AliasMaps() {
		for sourceID, canonicalID := range m {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO aliases (source, source_id, canonical_id, run_id) VALUES (?, ?, ?, ?)`,
				string(source), sourceID, canonicalID, runID,
			); err != nil {
				return "", eris.Wrapf(err, "sqlite: insert alias %s/%s", source, sourceID)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "sqlite: commit registry snapshot")
	}
	return runID, nil
}

func (s *SQLiteStore) RecordAudit(ctx context.Context, stage string, summary model.AuditSummary) (string, error) {
	id := uuid.New().String()

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal audit summary")
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_runs (id, stage, summary, created_at) VALUES (?, ?, ?, ?)`,
		id, stage, string(summaryJSON), time.Now().UTC(),
	); err != nil {
		return "", eris.Wrap(err, "sqlite: insert audit run")
	}
	return id, nil
}

func (s *SQLiteStore) RecordOverrides(ctx context.Context, runID string, overrides []model.Override) error {
	for _, ov := range overrides {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO overrides (id, run_id, source, original_id, confirmed_id, notes, applied_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), runID, string(ov.Source), ov.OriginalID, ov.ConfirmedID, ov.Notes, time.Now().UTC(),
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert override %s/%s", ov.Source, ov.OriginalID)
		}
	}
	return nil
}

func (s *SQLiteStore) CountPlayers(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: count players")
	}
	return n, nil
}
