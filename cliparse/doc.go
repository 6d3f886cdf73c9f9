// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p               Portal port (default: 3318)
	-d               Session store database URL (default: file:ules-voting.db)
	-t               Database type, sqlite or postgres (default: sqlite)
	-tally-url       Vote submission endpoint
	-validation-url  Voter validation endpoint
	-catalog-url     Category catalog URL or file path
	-retries         Retries after the first submission attempt (default: 3)
	-backoff         Base backoff delay (default: 500ms)
	-screen          Host display geometry, e.g. 1920x1080x24
	-env             dotenv file to load first (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	TALLY_URL          → -tally-url
	VALIDATION_URL     → -validation-url
	CATALOG_URL        → -catalog-url
	SUBMIT_MAX_RETRIES → -retries
	SUBMIT_BASE_DELAY  → -backoff
	DISPLAY_GEOMETRY   → -screen

CLI flags take precedence over environment variables. The dotenv file is
loaded before the fallback and never overrides variables that are already
set. A missing dotenv file is not an error.

# Validation

ParseFlags returns an error if required values are missing:

  - TALLY_URL, VALIDATION_URL and CATALOG_URL must be provided
  - DATABASE_URL must be provided unless the database type is sqlite
*/
package cliparse
