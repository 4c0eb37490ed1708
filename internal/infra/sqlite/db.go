// Package sqlite provides SQLite-based persistent storage for MoodMuse.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/moodmuse-app/moodmuse/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Whole-record user aggregate. The tracking engine reads and
		// writes the record atomically, last-write-wins per key.
		`CREATE TABLE IF NOT EXISTS user_data (
			user_key   TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,

		// Journal timeline
		`CREATE TABLE IF NOT EXISTS journal_entries (
			id         TEXT PRIMARY KEY,
			mood       TEXT NOT NULL,
			prompt     TEXT NOT NULL DEFAULT '',
			body       TEXT NOT NULL,
			reply      TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_created ON journal_entries(created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── User Activity Record ───────────────────────────────────────────────────

// LoadUserData reads the whole user aggregate by key.
// Returns (nil, nil) when no record exists yet.
func (d *DB) LoadUserData(userKey string) (*domain.UserActivityData, error) {
	var payload string
	err := d.db.QueryRow(
		`SELECT payload FROM user_data WHERE user_key = ?`, userKey,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data domain.UserActivityData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	return &data, nil
}

// SaveUserData writes the whole user aggregate atomically. Last write wins.
func (d *DB) SaveUserData(userKey string, data *domain.UserActivityData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}

	_, err = d.db.Exec(
		`INSERT INTO user_data (user_key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_key) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`,
		userKey, string(payload), time.Now().Unix(),
	)
	return err
}

// ─── Journal Entries ────────────────────────────────────────────────────────

// InsertJournalEntry stores a new journal entry.
func (d *DB) InsertJournalEntry(e domain.JournalEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO journal_entries (id, mood, prompt, body, reply, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Mood, e.Prompt, e.Text, e.Reply, e.CreatedAt.Unix(),
	)
	return err
}

// GetJournalEntry retrieves one entry by id. Returns (nil, nil) if absent.
func (d *DB) GetJournalEntry(id string) (*domain.JournalEntry, error) {
	row := d.db.QueryRow(
		`SELECT id, mood, prompt, body, reply, created_at
		 FROM journal_entries WHERE id = ?`, id,
	)
	return scanEntry(row)
}

// ListJournalEntries returns entries newest first, up to limit.
func (d *DB) ListJournalEntries(limit int) ([]domain.JournalEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, mood, prompt, body, reply, created_at
		 FROM journal_entries ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// AttachReply sets the AI reply on an existing entry.
func (d *DB) AttachReply(id, reply string) error {
	result, err := d.db.Exec(
		`UPDATE journal_entries SET reply = ? WHERE id = ?`, reply, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// JournalEntryCount returns the total number of entries.
func (d *DB) JournalEntryCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM journal_entries`).Scan(&count)
	return count, err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var createdAt int64

	err := s.Scan(&e.ID, &e.Mood, &e.Prompt, &e.Text, &e.Reply, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	e.CreatedAt = time.Unix(createdAt, 0)
	return &e, nil
}
