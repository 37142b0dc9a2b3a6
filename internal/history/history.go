// Package history persists search terms between sessions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultLimit bounds the history when the configuration does not.
const DefaultLimit = 50

// Store is a search-term history backed by SQLite. Terms are unique;
// repeating a search moves its term to the front instead of duplicating it,
// and the store trims itself to the configured limit on every add.
type Store struct {
	db    *sql.DB
	limit int
}

// Open opens (and creates if needed) the history database at path.
func Open(ctx context.Context, path string, limit int) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(pctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if err := bootstrap(pctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, limit: limit}, nil
}

// bootstrap creates the schema if missing. seq orders terms by recency; the
// wall-clock stamp is informational only.
func bootstrap(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS search_history (
  term        TEXT PRIMARY KEY,
  seq         INTEGER NOT NULL,
  searched_at TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS search_history_seq_idx ON search_history(seq);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap history db: %w", err)
		}
	}
	return nil
}

// Add records a search term as the most recent one. Blank terms are ignored.
// Adding an existing term moves it to the front rather than duplicating it.
func (s *Store) Add(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO search_history (term, seq, searched_at)
VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM search_history), ?)
ON CONFLICT(term) DO UPDATE SET seq = excluded.seq, searched_at = excluded.searched_at;`,
		term, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("add history term: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
DELETE FROM search_history
WHERE term NOT IN (SELECT term FROM search_history ORDER BY seq DESC LIMIT ?);`, s.limit)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// Recent returns up to limit terms, most recent first.
func (s *Store) Recent(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT term FROM search_history ORDER BY seq DESC LIMIT ?;`, s.limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("scan history term: %w", err)
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return terms, nil
}

// Clear removes every term.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM search_history;`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
