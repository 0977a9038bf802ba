package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultLimit applies when Recent is called with a non-positive limit.
const DefaultLimit = 20

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens the journal database.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS passes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pass_id TEXT NOT NULL UNIQUE,
		pass_trigger TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		attempted INTEGER NOT NULL,
		copied INTEGER NOT NULL,
		profiles BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_passes_finished ON passes(finished_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a pass record to the journal.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := json.Marshal(rec.Profiles)
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO passes (pass_id, pass_trigger, started_at, finished_at, attempted, copied, profiles) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.PassID, rec.Trigger, rec.StartedAt.UnixMilli(), rec.FinishedAt.UnixMilli(), rec.Attempted, rec.Copied, profiles,
	)
	if err != nil {
		return fmt.Errorf("insert pass: %w", err)
	}
	return nil
}

// Recent returns up to limit passes, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT pass_id, pass_trigger, started_at, finished_at, attempted, copied, profiles FROM passes ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query passes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var (
			rec               Record
			started, finished int64
			profiles          []byte
		)
		if err := rows.Scan(&rec.PassID, &rec.Trigger, &started, &finished, &rec.Attempted, &rec.Copied, &profiles); err != nil {
			return nil, fmt.Errorf("scan pass: %w", err)
		}
		rec.StartedAt = time.UnixMilli(started)
		rec.FinishedAt = time.UnixMilli(finished)
		if len(profiles) > 0 {
			if err := json.Unmarshal(profiles, &rec.Profiles); err != nil {
				return nil, fmt.Errorf("unmarshal profiles: %w", err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
