// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Ballot lifecycle states
const (
	StateSelecting      = "selecting"
	StateReadyToConfirm = "ready_to_confirm"
	StateConfirming     = "confirming"
	StateSubmitting     = "submitting"
	StateSucceeded      = "succeeded"
	StateFailed         = "failed"
)

// IdentityKey is the fixed name the voter identity is stored under
// in the tab-scoped session store.
const IdentityKey = "voterData"

// Request types

type CreateSessionRequest struct {
	FullName     string `json:"full_name" validate:"required,max=120"`
	MatricNumber string `json:"matric_number" validate:"required,max=40"`
}

type SelectNomineeRequest struct {
	NomineeName string `json:"nominee_name"`
}

// Signals are optional; without them the host device is fingerprinted.
type SubmitBallotRequest struct {
	Signals *DeviceSignals `json:"signals,omitempty"`
}

type FingerprintRequest struct {
	Signals *DeviceSignals `json:"signals,omitempty"`
}

// Response types

type CreateSessionResponse struct {
	SessionToken string        `json:"session_token"`
	Identity     VoterIdentity `json:"identity"`
}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type BallotView struct {
	State         string            `json:"state"`
	Selections    map[string]string `json:"selections"`
	CategoryCount int               `json:"category_count"`
	Complete      bool              `json:"complete"`
	Error         string            `json:"error,omitempty"`
}

type SubmitBallotResponse struct {
	State   string  `json:"state"`
	Message string  `json:"message"`
	Receipt Receipt `json:"receipt"`
}

type FingerprintResponse struct {
	Fingerprint string `json:"fingerprint"`
	Source      string `json:"source"`
}

type ReceiptResponse struct {
	Receipt Receipt `json:"receipt"`
	Age     string  `json:"age"`
}

// Domain types

// VoterIdentity only exists after the validation service accepted it.
type VoterIdentity struct {
	FullName     string `json:"fullName"`
	MatricNumber string `json:"matricNumber"`
}

type Nominee struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Image string `json:"image,omitempty"`
}

type Category struct {
	ID       string    `json:"id" validate:"required"`
	Title    string    `json:"title" validate:"required"`
	Nominees []Nominee `json:"nominees" validate:"required,min=1,dive"`
}

type Catalog struct {
	Categories []Category `json:"categories" validate:"required,min=1,dive"`
}

// Choice is one category's selection as sent to the tally service.
type Choice struct {
	CategoryID  string `json:"categoryId"`
	NomineeName string `json:"nomineeName"`
}

// SubmissionPayload is what the tally service receives. SubmissionID is sent
// as the Idempotency-Key header rather than in the body.
type SubmissionPayload struct {
	FullName     string   `json:"fullName"`
	MatricNumber string   `json:"matricNumber"`
	Fingerprint  string   `json:"fingerprint"`
	Choices      []Choice `json:"choices"`
	SubmissionID string   `json:"-"`
}

// RemoteMessage is the body shape returned by the remote services, both on
// success and on error.
type RemoteMessage struct {
	Message string `json:"message"`
}

type Receipt struct {
	SubmissionID string    `json:"submission_id"`
	Fingerprint  string    `json:"fingerprint"`
	Message      string    `json:"message"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// DeviceSignals are the browser-collected fingerprint inputs reported by the
// portal UI.
type DeviceSignals struct {
	Canvas              string   `json:"canvas"`
	GPUVendor           string   `json:"gpu_vendor"`
	GPURenderer         string   `json:"gpu_renderer"`
	ScreenWidth         int      `json:"screen_width"`
	ScreenHeight        int      `json:"screen_height"`
	ColorDepth          int      `json:"color_depth"`
	Language            string   `json:"language"`
	Languages           []string `json:"languages"`
	HardwareConcurrency int      `json:"hardware_concurrency"`
	DeviceMemory        float64  `json:"device_memory"`
	TimezoneOffset      int      `json:"timezone_offset"`
	Platform            string   `json:"platform"`
	MaxTouchPoints      int      `json:"max_touch_points"`
	Orientation         string   `json:"orientation"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
