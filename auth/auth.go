// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// sessionTokenBytes is the entropy of a session token (192 bits).
const sessionTokenBytes = 24

var ErrInvalidToken = errors.New("invalid token format")

// GenerateSessionToken creates the random token that scopes one portal tab.
func GenerateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateSessionToken checks the token has the shape GenerateSessionToken
// produces. It says nothing about whether the session exists.
func ValidateSessionToken(token string) error {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(b) != sessionTokenBytes {
		return ErrInvalidToken
	}
	return nil
}
