// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the portal.

# Request Types

  - CreateSessionRequest: full_name, matric_number
  - SelectNomineeRequest: nominee_name
  - SubmitBallotRequest: optional signals
  - FingerprintRequest: optional signals

# Response Types

  - CreateSessionResponse: session_token, identity
  - CategoriesResponse: categories
  - BallotView: state, selections, category_count, complete, error
  - SubmitBallotResponse: state, message, receipt
  - ReceiptResponse: receipt, age
  - FingerprintResponse: fingerprint, source
  - ErrorResponse: error, message

# Domain Types

  - VoterIdentity: the validated voter, stored under IdentityKey
  - Catalog, Category, Nominee: the election's ballot layout
  - Choice, SubmissionPayload: what the tally service receives
  - Receipt: local record of an accepted submission
  - DeviceSignals: browser-reported fingerprint inputs

Wire names follow the remote services: the tally payload and the stored
identity use camelCase, the portal's own API uses snake_case.
*/
package models
