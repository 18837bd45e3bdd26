package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const preferencesSchema = `CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteKV implements KV on a local sqlite database.
type SQLiteKV struct {
	db *sqlx.DB
}

var _ KV = (*SQLiteKV)(nil)

// Open opens (and creates if needed) the sqlite database at databaseFile.
func Open(databaseFile string) (*SQLiteKV, error) {
	if dir := filepath.Dir(databaseFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll > %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", databaseFile)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open > %w", err)
	}
	if _, err := db.Exec(preferencesSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Exec(create preferences) > %w", err)
	}
	return NewSQLiteKV(db), nil
}

// NewSQLiteKV wraps an already opened database.
func NewSQLiteKV(db *sqlx.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// Load returns the value for key, or found=false if the key has never been
// saved.
func (s *SQLiteKV) Load(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM preferences WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("db.GetContext(preference) > %w", err)
	}
	return value, true, nil
}

// Save inserts or updates the value for key.
func (s *SQLiteKV) Save(ctx context.Context, key string, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert preference) > %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
