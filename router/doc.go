// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the voting portal.

	mux := router.NewRouter(portal, metrics)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Voter session (tab scoped, X-Session-Token):

	POST   /session - Validate voter, returns session_token
	GET    /session - Current voter
	DELETE /session - Forget voter and ballot

Ballot:

	GET  /categories                  - Catalog, loaded once per session
	GET  /ballot                      - State and selections
	PUT  /ballot/selections/{category} - Choose a nominee
	POST /ballot/finalize             - Open confirmation
	POST /ballot/cancel               - Back to selecting
	POST /ballot/dismiss              - Acknowledge a failure
	POST /ballot/submit               - Send to the tally service
	GET  /ballot/receipt              - Receipt after success

Device:

	POST /device/fingerprint - Fingerprint of reported signals or the host
*/
package router
