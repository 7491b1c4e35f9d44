// Package storage persists the vendor rule set across sessions using SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hollis/taxease/internal/common"
	"github.com/hollis/taxease/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// rulesSlot is the single named settings slot holding the rule array as
// JSON text.
const rulesSlot = "vendor_rules"

// SQLiteStorage implements rule persistence over a SQLite settings table.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage opens (creating if needed) the database at dbPath and
// runs migrations.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStorage{db: db, dbPath: dbPath}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// LoadRules reads the persisted rule set. Returns common.ErrNotFound when
// the slot has never been written.
func (s *SQLiteStorage) LoadRules(ctx context.Context) ([]model.VendorRule, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM settings WHERE key = ?
	`, rulesSlot).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	var rules []model.VendorRule
	if err := json.Unmarshal([]byte(value), &rules); err != nil {
		return nil, fmt.Errorf("stored rules are corrupt: %w", err)
	}

	return rules, nil
}

// SaveRules writes the full rule set to the slot, replacing any previous
// value.
func (s *SQLiteStorage) SaveRules(ctx context.Context, rules []model.VendorRule) error {
	value, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to serialize rules: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, rulesSlot, string(value), time.Now())

	if err != nil {
		return fmt.Errorf("failed to save rules: %w", err)
	}

	return nil
}
