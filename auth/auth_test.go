// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateSessionToken(t *testing.T) {
	// Test basic generation
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateSessionToken() returned empty string")
	}

	// Should be URL-safe (no padding)
	if strings.Contains(token, "=") {
		t.Error("GenerateSessionToken() contains padding characters")
	}

	// Should be reasonably long (24 bytes encoded)
	if len(token) < 30 {
		t.Errorf("GenerateSessionToken() too short: %d chars", len(token))
	}

	// Test randomness - should not produce duplicates
	tokens := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateSessionToken()
		if err != nil {
			t.Fatalf("GenerateSessionToken() error on iteration %d: %v", i, err)
		}
		if tokens[token] {
			t.Errorf("GenerateSessionToken() produced duplicate token: %s", token)
		}
		tokens[token] = true
	}
}

func TestValidateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"generated token", token, false},
		{"empty", "", true},
		{"too short", token[:10], true},
		{"not base64", strings.Repeat("!", 32), true},
		{"padded", token + "=", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionToken(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSessionToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err != ErrInvalidToken {
				t.Errorf("ValidateSessionToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
