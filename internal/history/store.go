// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a short recency list of submitted sentences so the
// CLI and the HTTP endpoint can offer them again.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/deedparse/pkg/types"
)

const defaultLimit = 5

// Entry is one remembered sentence.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Store manages the history SQLite database.
type Store struct {
	db    *sql.DB
	limit int

	// now is overridden by tests.
	now func() time.Time
}

// NewStore opens or creates the history database at cfg.Path and creates
// the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	s := &Store{db: db, limit: limit, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Add records text as the newest entry and trims the list to its limit.
// Blank text and a repeat of the newest entry are ignored; the second
// result reports whether anything was stored.
func (s *Store) Add(ctx context.Context, text string) (Entry, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var newest string
	err = tx.QueryRowContext(ctx,
		`SELECT text FROM entries ORDER BY rowid DESC LIMIT 1`,
	).Scan(&newest)
	switch {
	case err == nil && newest == text:
		return Entry{}, false, nil
	case err != nil && err != sql.ErrNoRows:
		return Entry{}, false, fmt.Errorf("reading newest entry: %w", err)
	}

	e := Entry{ID: uuid.NewString(), Text: text, CreatedAt: s.now().UTC()}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO entries (id, text, created_at) VALUES (?, ?, ?)`,
		e.ID, e.Text, e.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return Entry{}, false, fmt.Errorf("inserting entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM entries WHERE rowid NOT IN (
			SELECT rowid FROM entries ORDER BY rowid DESC LIMIT ?
		)`, s.limit,
	); err != nil {
		return Entry{}, false, fmt.Errorf("trimming history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, false, fmt.Errorf("committing entry: %w", err)
	}
	return e, true, nil
}

// List returns the remembered entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, created_at FROM entries ORDER BY rowid DESC LIMIT ?`, s.limit)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Text, &created); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
