// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot tracks a voter's selections and drives submission.

# Selections

One nominee per category, last write wins. There is no removal:

	s := ballot.NewSelections()
	s.Select("best-dressed", "Nominee B")
	s.Select("best-dressed", "Nominee A") // replaces B
	s.IsComplete(len(catalog.Categories))

# Lifecycle

A Machine moves through explicit states:

	selecting → ready_to_confirm → confirming → submitting → succeeded
	                                   ↑   │                  └→ failed
	                                   │   └→ selecting (cancel)
	                                   └──────────────────────── failed (dismiss / resubmit)

Selecting becomes ReadyToConfirm as soon as every category has a choice.
Finalize opens confirmation, Cancel returns to selecting with the choices
intact. Submit builds the payload from the identity, a fresh fingerprint
and the current choices, and sends it through retry.WithBackoff.

A failed submission keeps every selection. Dismiss returns to confirmation;
Submit from Failed does the same and sends again. A successful submission
drops the identity and calls Config.OnSucceeded so the session store can
forget it too.

A second Submit while one is in flight returns ErrSubmissionInFlight, and
Cancel is refused once submission has started.

The submission ID is kept across failed attempts so a resubmit carries the
same idempotency key. Success or a changed choice starts a new one. Retire
closes the ballot for good unless it is being submitted.
*/
package ballot
