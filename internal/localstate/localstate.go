// Package localstate persists the two pieces of client-local state
// that survive a restart: the last authenticated user record and the
// last active UI tab.
package localstate

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	keySessionUser = "session_user"
	keyActiveTab   = "active_tab"
)

// DB wraps the client-local SQLite database.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the local state database at path. Use
// ":memory:" for an in-memory database in tests.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening local state: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &DB{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS client_state (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`)
	return err
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) set(key string, value []byte) error {
	_, err := d.db.Exec(
		`INSERT INTO client_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (d *DB) get(key string) ([]byte, bool, error) {
	var value []byte
	err := d.db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (d *DB) clear(key string) error {
	if _, err := d.db.Exec(`DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clearing %s: %w", key, err)
	}
	return nil
}

// SaveSessionUser stores the serialized authenticated user record.
func (d *DB) SaveSessionUser(data []byte) error {
	return d.set(keySessionUser, data)
}

// LoadSessionUser returns the serialized user record, if any.
func (d *DB) LoadSessionUser() ([]byte, bool, error) {
	return d.get(keySessionUser)
}

// ClearSessionUser removes the stored session on logout.
func (d *DB) ClearSessionUser() error {
	return d.clear(keySessionUser)
}

// SaveActiveTab stores the last active UI tab.
func (d *DB) SaveActiveTab(tab string) error {
	return d.set(keyActiveTab, []byte(tab))
}

// LoadActiveTab returns the last active UI tab, if any.
func (d *DB) LoadActiveTab() (string, bool, error) {
	data, ok, err := d.get(keyActiveTab)
	return string(data), ok, err
}
