// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import (
	"fmt"
	"unicode/utf16"
)

const (
	fnvOffset32 uint32 = 0x811c9dc5
	fnvPrime32  uint32 = 0x01000193
)

// Hash returns the 16 hex character fingerprint of raw.
//
// The first half is FNV-1a over raw's UTF-16 code units. The second half
// continues from that value over the code units in reverse order.
func Hash(raw string) string {
	units := utf16.Encode([]rune(raw))

	h := fnvOffset32
	for _, u := range units {
		h ^= uint32(u)
		h *= fnvPrime32
	}
	h1 := h

	for i := len(units) - 1; i >= 0; i-- {
		h ^= uint32(units[i])
		h *= fnvPrime32
	}

	return fmt.Sprintf("%08x%08x", h1, h)
}
