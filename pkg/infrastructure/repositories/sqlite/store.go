// Package sqlite provides the durable dataset and settings stores over
// a single SQLite file. Datasets are stored as JSON blobs keyed by
// dataset name, so a save is an all-or-nothing replacement and dates
// round-trip through their JSON string form.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mdlane/campstock/pkg/domain/entities"
	"github.com/mdlane/campstock/pkg/domain/repositories"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	name TEXT PRIMARY KEY,
	body TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store implements both the dataset and settings repositories over one
// SQLite database file.
type Store struct {
	db *sql.DB
}

// Verify interface compliance
var (
	_ repositories.DatasetRepository  = (*Store)(nil)
	_ repositories.SettingsRepository = (*Store)(nil)
)

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) saveDataset(ctx context.Context, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s dataset: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO datasets (name, body) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body`,
		name, string(body))
	if err != nil {
		return fmt.Errorf("failed to store %s dataset: %w", name, err)
	}
	return nil
}

func (s *Store) loadDataset(ctx context.Context, name string, v any) error {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM datasets WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s dataset: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("failed to decode %s dataset: %w", name, err)
	}
	return nil
}

// SaveSales replaces the stored sales dataset.
func (s *Store) SaveSales(ctx context.Context, records []entities.SalesRecord) error {
	return s.saveDataset(ctx, repositories.DatasetSales, records)
}

// LoadSales returns the stored sales dataset, empty when never saved.
func (s *Store) LoadSales(ctx context.Context) ([]entities.SalesRecord, error) {
	var records []entities.SalesRecord
	if err := s.loadDataset(ctx, repositories.DatasetSales, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveInventory replaces the stored inventory dataset.
func (s *Store) SaveInventory(ctx context.Context, records []entities.InventoryRecord) error {
	return s.saveDataset(ctx, repositories.DatasetInventory, records)
}

// LoadInventory returns the stored inventory dataset, empty when never
// saved.
func (s *Store) LoadInventory(ctx context.Context) ([]entities.InventoryRecord, error) {
	var records []entities.InventoryRecord
	if err := s.loadDataset(ctx, repositories.DatasetInventory, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Clear drops all stored datasets. Settings are left untouched.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM datasets`); err != nil {
		return fmt.Errorf("failed to clear datasets: %w", err)
	}
	return nil
}

// Get returns the setting value for key and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores the setting value for key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}

// Delete removes the setting if present.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}
