// Package history keeps a log of every calculation in a sqlite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Panel names used in entries.
const (
	PanelStandard   = "standard"
	PanelScientific = "scientific"
	PanelBMI        = "bmi"
	PanelAge        = "age"
	PanelCurrency   = "currency"
)

// Entry is one recorded calculation.
type Entry struct {
	ID        string
	Panel     string
	Input     string
	Output    string
	Failed    bool
	CreatedAt time.Time
}

func (e Entry) String() string {
	return fmt.Sprintf("%s  %-10s  %s = %s", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Panel, e.Input, e.Output)
}

// Recorder records calculations.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Nop is a Recorder that discards entries, used when history is disabled.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }

var _ Recorder = (*Store)(nil)

// Config holds configuration for the store
type Config struct {
	Path string
}

// Store is a sqlite history database. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Open opens or creates the history database at cfg.Path.
func Open(cfg Config) (*Store, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		panel TEXT NOT NULL,
		input TEXT NOT NULL,
		output TEXT NOT NULL,
		failed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_entries_panel ON entries(panel);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores an entry, assigning its ID and time if they are unset.
func (s *Store) Record(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, panel, input, output, failed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Panel, e.Input, e.Output, e.Failed, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.query(ctx, "", limit)
}

// ListPanel is like List but only returns entries from one panel.
func (s *Store) ListPanel(ctx context.Context, panel string, limit int) ([]Entry, error) {
	return s.query(ctx, panel, limit)
}

func (s *Store) query(ctx context.Context, panel string, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, panel, input, output, failed, created_at FROM entries WHERE 1=1`
	var args []interface{}
	if panel != "" {
		query += " AND panel = ?"
		args = append(args, panel)
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Panel, &e.Input, &e.Output, &e.Failed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Clear deletes every entry and returns how many there were.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries")
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
