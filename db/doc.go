// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Drivers

The schema runs unchanged on SQLite (modernc.org/sqlite, the default) and
PostgreSQL (github.com/lib/pq). DriverName maps the configured
DATABASE_TYPE to the driver name for sql.Open.

# Tables

  - session_entry: tab-scoped key/value pairs, keyed by (session_token, name)
  - receipt: accepted submissions, one row per submission ID
*/
package db
