// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Driver names registered by the SQL drivers in use
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DriverName maps a configured database type to its database/sql driver.
func DriverName(databaseType string) (string, error) {
	switch databaseType {
	case "", "sqlite":
		return DriverSQLite, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	}
	return "", fmt.Errorf("unsupported database type %q", databaseType)
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The statements stay within the SQL both SQLite and PostgreSQL accept.
const schema = `
-- Tab-scoped key/value entries (the voter identity lives here)
CREATE TABLE IF NOT EXISTS session_entry (
    session_token TEXT NOT NULL,
    name TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (session_token, name)
);

-- Local copy of accepted submissions
CREATE TABLE IF NOT EXISTS receipt (
    submission_id TEXT PRIMARY KEY,
    session_token TEXT NOT NULL,
    fingerprint TEXT NOT NULL,
    message TEXT,
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_receipt_session_token ON receipt(session_token);
`
