// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the voting portal.

# Handler Types

  - SessionHandler: voter validation and the tab session
  - BallotHandler: catalog, selections, confirmation and submission
  - DeviceHandler: device fingerprints

Every handler shares one Portal, which owns the session store, the remote
client, the host fingerprint source, metrics and the live ballots:

	portal := handlers.NewPortal(store, client, host, metrics, policy)

# Sessions

POST /session checks the voter against the remote register, retrying
transient failures, and returns a session token. Every other call sends it in
X-Session-Token. A portal restart loses live ballots but not identities; the
ballot is rebuilt from the stored identity on the next request.

# Voting Flow

	GET  /categories           → GetCategories (once per session)
	PUT  /ballot/selections/{c} → SelectNominee (until every category has one)
	POST /ballot/finalize      → Finalize
	POST /ballot/submit        → SubmitBallot

A rejected submission and one that ran out of retries both answer 502 with
the state "failed" and the message to show. Selections survive; the voter
can cancel, dismiss or submit again.

After success the identity is cleared and a receipt is kept, readable at
GET /ballot/receipt.
*/
package handlers
