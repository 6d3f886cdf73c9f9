// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides random identifiers for the portal.

# Session Tokens

Every portal tab gets its own random 24-byte (192-bit) token:

	token, err := auth.GenerateSessionToken()
	err = auth.ValidateSessionToken(token)

Tokens are URL-safe base64 encoded and sent back in the X-Session-Token
header. They scope the voter identity and the in-progress ballot.
*/
package auth
