// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
)

var (
	ErrNoIdentity = errors.New("no voter identity in session")
	ErrNoReceipt  = errors.New("no receipt for session")
)

// Store is the tab-scoped key/value store behind voter sessions.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Put stores v as JSON under name for the session.
func (s *Store) Put(ctx context.Context, token, name string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_entry (session_token, name, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_token, name) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, token, name, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	return nil
}

// Get returns the raw JSON stored under name, or sql.ErrNoRows.
func (s *Store) Get(ctx context.Context, token, name string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM session_entry WHERE session_token = $1 AND name = $2
	`, token, name).Scan(&value)
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *Store) SaveIdentity(ctx context.Context, token string, identity models.VoterIdentity) error {
	if identity.MatricNumber == "" {
		return ErrNoIdentity
	}
	return s.Put(ctx, token, models.IdentityKey, identity)
}

// LoadIdentity returns the session's voter. A missing or unreadable entry is
// ErrNoIdentity; only database failures are reported as other errors.
func (s *Store) LoadIdentity(ctx context.Context, token string) (models.VoterIdentity, error) {
	raw, err := s.Get(ctx, token, models.IdentityKey)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VoterIdentity{}, ErrNoIdentity
	}
	if err != nil {
		return models.VoterIdentity{}, fmt.Errorf("failed to load identity: %w", err)
	}

	var identity models.VoterIdentity
	if err := json.Unmarshal(raw, &identity); err != nil || identity.MatricNumber == "" {
		slog.Warn("discarding unreadable voter identity", "error", err)
		return models.VoterIdentity{}, ErrNoIdentity
	}
	return identity, nil
}

// Clear removes every entry of the session.
func (s *Store) Clear(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_entry WHERE session_token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Store) SaveReceipt(ctx context.Context, token string, r models.Receipt) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO receipt (submission_id, session_token, fingerprint, message, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.SubmissionID, token, r.Fingerprint, r.Message, r.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to store receipt: %w", err)
	}
	return nil
}

// LatestReceipt returns the most recent receipt of the session.
func (s *Store) LatestReceipt(ctx context.Context, token string) (models.Receipt, error) {
	var r models.Receipt
	var message sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT submission_id, fingerprint, message, submitted_at
		FROM receipt
		WHERE session_token = $1
		ORDER BY submitted_at DESC
		LIMIT 1
	`, token).Scan(&r.SubmissionID, &r.Fingerprint, &message, &r.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Receipt{}, ErrNoReceipt
	}
	if err != nil {
		return models.Receipt{}, fmt.Errorf("failed to load receipt: %w", err)
	}
	r.Message = message.String
	return r, nil
}
