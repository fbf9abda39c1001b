// Package store persists run history for audit trails. It is strictly a
// CLI concern: the engine never touches it, and running without a history
// database is the default.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// History is the SQLite-backed run-history store.
type History struct {
	db *sql.DB
	mu sync.RWMutex
}

// Entry is one checker outcome within a recorded run.
type Entry struct {
	RunID     string
	Checklist string
	CheckerID string
	Status    string
	Reason    string
	Found     int
	Missing   int
	Extra     int
	Waived    int
	Unused    int
	CreatedAt time.Time
}

// Open initializes the history database at path, creating the directory
// and schema as needed.
func Open(path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	h := &History{db: db}
	if err := h.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		checklist TEXT,
		checker_id TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT,
		found_count INTEGER DEFAULT 0,
		missing_count INTEGER DEFAULT 0,
		extra_count INTEGER DEFAULT 0,
		waived_count INTEGER DEFAULT 0,
		unused_count INTEGER DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_run_history_run ON run_history(run_id);
	CREATE INDEX IF NOT EXISTS idx_run_history_checker ON run_history(checker_id);
	`
	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}

// Record appends one run's entries in a single transaction.
func (h *History) Record(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO run_history
		(run_id, checklist, checker_id, status, reason,
		 found_count, missing_count, extra_count, waived_count, unused_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare history insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, e := range entries {
		created := now
		if !e.CreatedAt.IsZero() {
			created = e.CreatedAt.Unix()
		}
		if _, err := stmt.Exec(e.RunID, e.Checklist, e.CheckerID, e.Status, e.Reason,
			e.Found, e.Missing, e.Extra, e.Waived, e.Unused, created); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record history entry for %s: %w", e.CheckerID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (h *History) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	rows, err := h.db.Query(`SELECT run_id, checklist, checker_id, status, reason,
		found_count, missing_count, extra_count, waived_count, unused_count, created_at
		FROM run_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.RunID, &e.Checklist, &e.CheckerID, &e.Status, &e.Reason,
			&e.Found, &e.Missing, &e.Extra, &e.Waived, &e.Unused, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.CreatedAt = time.Unix(created, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}
