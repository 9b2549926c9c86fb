// Package storage provides database access and repositories
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// New creates a new database connection
func New(databaseURL string) (*DB, error) {
	db, err := sql.Open("sqlite3", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &DB{db}, nil
}

// Migrate runs database migrations
func (db *DB) Migrate() error {
	migrations := []string{
		createRiskProfilesTable,
		createHoldingsTable,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

const createRiskProfilesTable = `
CREATE TABLE IF NOT EXISTS risk_profiles (
	user_id TEXT PRIMARY KEY,
	risk_tolerance TEXT NOT NULL,
	investment_horizon TEXT NOT NULL,
	monthly_income TEXT NOT NULL DEFAULT '0',
	monthly_expenses TEXT NOT NULL DEFAULT '0',
	emergency_fund TEXT NOT NULL DEFAULT '0',
	age INTEGER NOT NULL,
	dependents INTEGER NOT NULL DEFAULT 0,
	financial_knowledge TEXT NOT NULL,
	primary_goals TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const createHoldingsTable = `
CREATE TABLE IF NOT EXISTS holdings (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	asset_id TEXT NOT NULL,
	name TEXT NOT NULL,
	sector TEXT NOT NULL,
	geography TEXT NOT NULL,
	risk_level TEXT NOT NULL,
	holding_amount TEXT NOT NULL DEFAULT '0',
	current_price TEXT NOT NULL DEFAULT '0',
	entry_price TEXT NOT NULL DEFAULT '0',
	investment_value TEXT NOT NULL DEFAULT '0',
	volume_24h TEXT NOT NULL DEFAULT '0',
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_holdings_user_id ON holdings(user_id);
CREATE INDEX IF NOT EXISTS idx_holdings_asset_id ON holdings(asset_id);
`
