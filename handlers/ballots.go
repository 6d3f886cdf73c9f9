// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/Sadiq-Teslim/ules-voting-sub000/ballot"
	"github.com/Sadiq-Teslim/ules-voting-sub000/middleware"
	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
	"github.com/Sadiq-Teslim/ules-voting-sub000/remote"
	"github.com/Sadiq-Teslim/ules-voting-sub000/session"
)

// MalformedCatalogMessage blocks voting until the catalog is fixed.
const MalformedCatalogMessage = "The ballot could not be loaded. Please contact the electoral committee."

type BallotHandler struct {
	portal *Portal
}

func NewBallotHandler(p *Portal) *BallotHandler {
	return &BallotHandler{portal: p}
}

// GetCategories handles GET /categories
// The catalog is fetched once per session and reused afterwards
func (h *BallotHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.portal.requireSession(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		catalog, err := h.portal.remote.LoadCatalog(r.Context())
		if errors.Is(err, remote.ErrMalformedCatalog) {
			slog.Error("catalog rejected", "error", err)
			middleware.ErrorResponse(w, http.StatusBadGateway, MalformedCatalogMessage)
			return
		}
		if err != nil {
			slog.Error("failed to load catalog", "error", err)
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Categories are unavailable, please try again")
			return
		}
		s.catalog = &catalog
		s.machine.SetCategoryCount(len(catalog.Categories))
		slog.Info("catalog loaded", "categories", len(catalog.Categories))
	}

	middleware.JSONResponse(w, http.StatusOK, models.CategoriesResponse{Categories: s.catalog.Categories})
}

// GetBallot handles GET /ballot
func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.portal.requireSession(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, s.machine.View())
}

// SelectNominee handles PUT /ballot/selections/{category}
// Replaces any earlier choice in the category
func (h *BallotHandler) SelectNominee(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.portal.requireSession(w, r)
	if !ok {
		return
	}
	categoryID := r.PathValue("category")

	var req models.SelectNomineeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.NomineeName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nominee_name is required")
		return
	}

	s.mu.Lock()
	catalog := s.catalog
	s.mu.Unlock()
	if catalog == nil {
		status, msg := transitionStatus(ballot.ErrCatalogNotLoaded)
		middleware.ErrorResponse(w, status, msg)
		return
	}

	category, found := findCategory(catalog, categoryID)
	if !found {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown category")
		return
	}
	if !hasNominee(category, req.NomineeName) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown nominee for this category")
		return
	}

	if err := s.machine.Select(categoryID, req.NomineeName); err != nil {
		status, msg := transitionStatus(err)
		middleware.ErrorResponse(w, status, msg)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, s.machine.View())
}

// Finalize handles POST /ballot/finalize
func (h *BallotHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*ballot.Machine).Finalize)
}

// Cancel handles POST /ballot/cancel
func (h *BallotHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*ballot.Machine).Cancel)
}

// Dismiss handles POST /ballot/dismiss
func (h *BallotHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*ballot.Machine).Dismiss)
}

func (h *BallotHandler) transition(w http.ResponseWriter, r *http.Request, move func(*ballot.Machine) error) {
	_, s, ok := h.portal.requireSession(w, r)
	if !ok {
		return
	}

	if err := move(s.machine); err != nil {
		status, msg := transitionStatus(err)
		middleware.ErrorResponse(w, status, msg)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, s.machine.View())
}

// SubmitBallot handles POST /ballot/submit
// Sends the confirmed ballot to the tally service, retrying transient failures
func (h *BallotHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.portal.requireSession(w, r)
	if !ok {
		return
	}

	var req models.SubmitBallotRequest
	if err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	generator, source := h.portal.fingerprinter(req.Signals)
	slog.Debug("submitting ballot", "fingerprint_source", source)

	receipt, err := s.machine.Submit(r.Context(), generator)
	if err != nil {
		if errors.Is(err, ballot.ErrInvalidTransition) || errors.Is(err, ballot.ErrSubmissionInFlight) || errors.Is(err, ballot.ErrIdentityRequired) {
			status, msg := transitionStatus(err)
			middleware.ErrorResponse(w, status, msg)
			return
		}

		// rejected and exhausted submissions look the same to the voter
		middleware.JSONResponse(w, http.StatusBadGateway, models.SubmitBallotResponse{
			State:   s.machine.State().String(),
			Message: ballot.UserMessage(err),
		})
		return
	}

	message := receipt.Message
	if message == "" {
		message = "Your vote has been recorded"
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitBallotResponse{
		State:   s.machine.State().String(),
		Message: message,
		Receipt: receipt,
	})
}

// GetReceipt handles GET /ballot/receipt
// Available after the identity was cleared, so only the token is checked
func (h *BallotHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	token, ok := sessionToken(w, r)
	if !ok {
		return
	}

	receipt, err := h.portal.store.LatestReceipt(r.Context(), token)
	if errors.Is(err, session.ErrNoReceipt) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No ballot has been submitted from this session")
		return
	}
	if err != nil {
		slog.Error("failed to load receipt", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load receipt")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReceiptResponse{
		Receipt: receipt,
		Age:     humanize.Time(receipt.SubmittedAt),
	})
}

func findCategory(catalog *models.Catalog, id string) (models.Category, bool) {
	for _, c := range catalog.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

func hasNominee(category models.Category, name string) bool {
	for _, n := range category.Nominees {
		if n.Name == name {
			return true
		}
	}
	return false
}
