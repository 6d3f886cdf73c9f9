// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ules-voting portal.

The portal runs on the voting device. It validates a voter against the
election register, walks them through one choice per award category,
fingerprints the device and submits the ballot to the remote tally service,
retrying transient failures with exponential backoff.

# Starting the Portal

The three remote endpoints are required, as flags or environment variables
(a .env file is read if present):

	TALLY_URL=https://tally.example/api/submit-vote \
	VALIDATION_URL=https://tally.example/api/validate-voter \
	CATALOG_URL=./categories.json go run .

Or with flags:

	go run . -p 3318 -tally-url ... -validation-url ... -catalog-url ...

# Configuration

  - PORT (-p): portal port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): session store DSN (default: file:ules-voting.db)
  - SUBMIT_MAX_RETRIES (-retries): retries after the first attempt (default: 3)
  - SUBMIT_BASE_DELAY (-backoff): first backoff wait (default: 500ms)
  - DISPLAY_GEOMETRY (-screen): host display for fingerprinting (default: 1920x1080x24)

# Architecture

  - fingerprint: device signals and the fingerprint hash
  - retry: exponential backoff executor
  - ballot: selections and the submission state machine
  - remote: client for the validation, catalog and tally services
  - session: tab-scoped identity and receipt store
  - handlers, router, middleware: the portal's HTTP API
  - metrics: Prometheus counters
  - models, auth, db, cliparse: shared types, tokens, schema, configuration

See package documentation for each component.
*/
package main
