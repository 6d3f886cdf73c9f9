// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Sadiq-Teslim/ules-voting-sub000/auth"
	"github.com/Sadiq-Teslim/ules-voting-sub000/ballot"
	"github.com/Sadiq-Teslim/ules-voting-sub000/middleware"
	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
	"github.com/Sadiq-Teslim/ules-voting-sub000/remote"
	"github.com/Sadiq-Teslim/ules-voting-sub000/retry"
	"github.com/Sadiq-Teslim/ules-voting-sub000/session"
)

type SessionHandler struct {
	portal *Portal
}

func NewSessionHandler(p *Portal) *SessionHandler {
	return &SessionHandler{portal: p}
}

// CreateSession handles POST /session
// Validates the voter with the remote register and opens a tab session
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.MatricNumber = strings.TrimSpace(req.MatricNumber)
	if err := h.portal.validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	identity := models.VoterIdentity{FullName: req.FullName, MatricNumber: req.MatricNumber}

	err := retry.Do(r.Context(), h.portal.policy, func(ctx context.Context) error {
		return h.portal.remote.Validate(ctx, identity)
	})
	if err != nil {
		var se *remote.StatusError
		if errors.As(err, &se) && !retry.IsRetryable(err) {
			slog.Info("voter rejected by register", "status", se.StatusCode)
			msg := se.UserMessage()
			if msg == "" {
				msg = "Voter could not be validated"
			}
			middleware.ErrorResponse(w, http.StatusForbidden, msg)
			return
		}
		slog.Error("voter validation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Voter validation is unavailable, please try again")
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to open session")
		return
	}

	if err := h.portal.store.SaveIdentity(r.Context(), token, identity); err != nil {
		slog.Error("failed to store identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to open session")
		return
	}

	slog.Info("voter session opened")

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionToken: token,
		Identity:     identity,
	})
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	token, ok := sessionToken(w, r)
	if !ok {
		return
	}

	identity, err := h.portal.store.LoadIdentity(r.Context(), token)
	if errors.Is(err, session.ErrNoIdentity) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No voter in this session")
		return
	}
	if err != nil {
		slog.Error("failed to load identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, identity)
}

// DeleteSession handles DELETE /session
// Forgets the voter and the ballot; refused while a submission is in flight
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	token, ok := sessionToken(w, r)
	if !ok {
		return
	}

	err := h.portal.closeSession(r.Context(), token)
	if errors.Is(err, ballot.ErrSubmissionInFlight) {
		status, msg := transitionStatus(err)
		middleware.ErrorResponse(w, status, msg)
		return
	}
	if err != nil {
		slog.Error("failed to clear session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Session cleared"})
}

// validationMessage names the first field the validator rejected.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	field := map[string]string{"FullName": "full_name", "MatricNumber": "matric_number"}[fe.Field()]
	if field == "" {
		field = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	}
	return field + " is invalid"
}
