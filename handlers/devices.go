// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/Sadiq-Teslim/ules-voting-sub000/middleware"
	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
)

type DeviceHandler struct {
	portal *Portal
}

func NewDeviceHandler(p *Portal) *DeviceHandler {
	return &DeviceHandler{portal: p}
}

// Fingerprint handles POST /device/fingerprint
// Hashes the reported browser signals, or the host device when none are sent
func (h *DeviceHandler) Fingerprint(w http.ResponseWriter, r *http.Request) {
	var req models.FingerprintRequest
	if err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	generator, source := h.portal.fingerprinter(req.Signals)

	middleware.JSONResponse(w, http.StatusOK, models.FingerprintResponse{
		Fingerprint: generator.Generate(r.Context()),
		Source:      source,
	})
}
