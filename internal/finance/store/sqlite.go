package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/moneywise/internal/finance"
)

// StorageKey is the fixed key the aggregate lives under, matching the
// persisted state layout (a single JSON document per key).
const StorageKey = "finance_data"

// SQLiteStorage persists the aggregate as a single JSON document in a
// local SQLite key-value table.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLite(ctx context.Context, db *sql.DB) (*SQLiteStorage, error) {
	query := `
		CREATE TABLE IF NOT EXISTS app_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return nil, fmt.Errorf("creating app_state table: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Load(ctx context.Context) (*finance.Data, error) {
	var raw string

	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, StorageKey).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("reading finance data: %w", err)
	}

	var data finance.Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("parsing finance data: %w", err)
	}

	return &data, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, data *finance.Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding finance data: %w", err)
	}

	query := `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`

	if _, err := s.db.ExecContext(ctx, query, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("writing finance data: %w", err)
	}

	return nil
}
