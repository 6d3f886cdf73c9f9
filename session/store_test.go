// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
	"github.com/Sadiq-Teslim/ules-voting-sub000/testutil"
)

func TestIdentityRoundTrip(t *testing.T) {
	store := NewStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	want := models.VoterIdentity{FullName: "Ada Obi", MatricNumber: "190401001"}
	if err := store.SaveIdentity(ctx, "tab-1", want); err != nil {
		t.Fatalf("SaveIdentity failed: %v", err)
	}

	got, err := store.LoadIdentity(ctx, "tab-1")
	if err != nil {
		t.Fatalf("LoadIdentity failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	// stored under the fixed key in camelCase
	raw, err := store.Get(ctx, "tab-1", models.IdentityKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(raw) != `{"fullName":"Ada Obi","matricNumber":"190401001"}` {
		t.Errorf("Unexpected stored value: %s", raw)
	}
}

func TestIdentityIsTabScoped(t *testing.T) {
	store := NewStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	store.SaveIdentity(ctx, "tab-1", models.VoterIdentity{FullName: "Ada", MatricNumber: "1"})

	if _, err := store.LoadIdentity(ctx, "tab-2"); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("Expected ErrNoIdentity for another tab, got %v", err)
	}
}

func TestSaveIdentity_Overwrites(t *testing.T) {
	store := NewStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	store.SaveIdentity(ctx, "tab", models.VoterIdentity{FullName: "Ada", MatricNumber: "1"})
	store.SaveIdentity(ctx, "tab", models.VoterIdentity{FullName: "Bayo", MatricNumber: "2"})

	got, err := store.LoadIdentity(ctx, "tab")
	if err != nil {
		t.Fatalf("LoadIdentity failed: %v", err)
	}
	if got.MatricNumber != "2" {
		t.Errorf("Expected latest identity, got %+v", got)
	}
}

func TestSaveIdentity_RejectsEmpty(t *testing.T) {
	store := NewStore(testutil.SetupTestDB(t))

	err := store.SaveIdentity(context.Background(), "tab", models.VoterIdentity{FullName: "Ada"})
	if !errors.Is(err, ErrNoIdentity) {
		t.Errorf("Expected ErrNoIdentity, got %v", err)
	}
}

func TestLoadIdentity_UnreadableIsAbsent(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{"not json", `{"fullName":`},
		{"wrong shape", `[1,2,3]`},
		{"missing matric number", `{"fullName":"Ada"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conn := testutil.SetupTestDB(t)
			_, err := conn.Exec(`
				INSERT INTO session_entry (session_token, name, value) VALUES ($1, $2, $3)
			`, "tab", models.IdentityKey, tc.value)
			if err != nil {
				t.Fatalf("Failed to seed entry: %v", err)
			}

			_, err = NewStore(conn).LoadIdentity(context.Background(), "tab")
			if !errors.Is(err, ErrNoIdentity) {
				t.Errorf("Expected ErrNoIdentity, got %v", err)
			}
		})
	}
}

func TestClear(t *testing.T) {
	store := NewStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	store.SaveIdentity(ctx, "tab", models.VoterIdentity{FullName: "Ada", MatricNumber: "1"})
	store.SaveIdentity(ctx, "other", models.VoterIdentity{FullName: "Bayo", MatricNumber: "2"})

	if err := store.Clear(ctx, "tab"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, err := store.LoadIdentity(ctx, "tab"); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("Expected identity to be cleared, got %v", err)
	}
	if _, err := store.LoadIdentity(ctx, "other"); err != nil {
		t.Errorf("Expected other session to survive, got %v", err)
	}
}

func TestReceipts(t *testing.T) {
	store := NewStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	if _, err := store.LatestReceipt(ctx, "tab"); !errors.Is(err, ErrNoReceipt) {
		t.Fatalf("Expected ErrNoReceipt, got %v", err)
	}

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	older := models.Receipt{SubmissionID: "sub-1", Fingerprint: "aaaaaaaaaaaaaaaa", Message: "Vote recorded", SubmittedAt: base}
	newer := models.Receipt{SubmissionID: "sub-2", Fingerprint: "bbbbbbbbbbbbbbbb", SubmittedAt: base.Add(time.Minute)}

	for _, r := range []models.Receipt{older, newer} {
		if err := store.SaveReceipt(ctx, "tab", r); err != nil {
			t.Fatalf("SaveReceipt failed: %v", err)
		}
	}

	got, err := store.LatestReceipt(ctx, "tab")
	if err != nil {
		t.Fatalf("LatestReceipt failed: %v", err)
	}
	if got.SubmissionID != "sub-2" || got.Fingerprint != "bbbbbbbbbbbbbbbb" {
		t.Errorf("Expected newest receipt, got %+v", got)
	}
	if !got.SubmittedAt.Equal(newer.SubmittedAt) {
		t.Errorf("Expected submitted_at %v, got %v", newer.SubmittedAt, got.SubmittedAt)
	}

	// receipts outlive the identity
	store.Clear(ctx, "tab")
	if _, err := store.LatestReceipt(ctx, "tab"); err != nil {
		t.Errorf("Expected receipt to survive Clear, got %v", err)
	}
}
