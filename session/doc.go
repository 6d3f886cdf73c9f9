// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session persists per-tab voter state in the SQL session store.

Every entry is keyed by the tab's session token and a name. The voter
identity lives under models.IdentityKey as JSON:

	store := session.NewStore(db)
	store.SaveIdentity(ctx, token, identity)
	identity, err := store.LoadIdentity(ctx, token)

A missing entry and an entry that cannot be decoded both yield
ErrNoIdentity; the voter is sent back to validation either way.

Receipts of accepted submissions are kept separately and survive Clear.
*/
package session
