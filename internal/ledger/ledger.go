// Package ledger persists one record per build into a local SQLite
// database, backing the history command.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one persisted build record. Report holds the full build report
// as JSON for later inspection.
type Entry struct {
	BuildID    string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    string
	Pages      int
	Warnings   int
	Report     string
}

// Store is a SQLite-backed build ledger.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the ledger database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create ledger directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize ledger schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		build_id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		pages INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		report TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records a completed build.
func (s *Store) Append(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (build_id, started_at, finished_at, outcome, pages, warnings, report) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.BuildID, e.StartedAt.Unix(), e.FinishedAt.Unix(), e.Outcome, e.Pages, e.Warnings, e.Report,
	)
	if err != nil {
		return fmt.Errorf("insert build record: %w", err)
	}
	return nil
}

// Recent returns up to limit builds, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT build_id, started_at, finished_at, outcome, pages, warnings, report FROM builds ORDER BY started_at DESC, build_id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query build records: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished int64
		if err := rows.Scan(&e.BuildID, &started, &finished, &e.Outcome, &e.Pages, &e.Warnings, &e.Report); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		e.StartedAt = time.Unix(started, 0)
		e.FinishedAt = time.Unix(finished, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate build records: %w", err)
	}
	return entries, nil
}

// Get returns the record for one build ID.
func (s *Store) Get(ctx context.Context, buildID string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT build_id, started_at, finished_at, outcome, pages, warnings, report FROM builds WHERE build_id = ?",
		buildID,
	)
	var e Entry
	var started, finished int64
	if err := row.Scan(&e.BuildID, &started, &finished, &e.Outcome, &e.Pages, &e.Warnings, &e.Report); err != nil {
		return Entry{}, fmt.Errorf("load build record: %w", err)
	}
	e.StartedAt = time.Unix(started, 0)
	e.FinishedAt = time.Unix(finished, 0)
	return e, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
