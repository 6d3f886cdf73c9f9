// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/Sadiq-Teslim/ules-voting-sub000/handlers"
	"github.com/Sadiq-Teslim/ules-voting-sub000/metrics"
	"github.com/Sadiq-Teslim/ules-voting-sub000/middleware"
)

func NewRouter(portal *handlers.Portal, m *metrics.Prometheus) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(portal)
	ballotHandler := handlers.NewBallotHandler(portal)
	deviceHandler := handlers.NewDeviceHandler(portal)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler())

	// Voter session (tab scoped)
	mux.HandleFunc("POST /session", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /session", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("DELETE /session", middleware.WithLogging(sessionHandler.DeleteSession))

	// Ballot
	mux.HandleFunc("GET /categories", middleware.WithLogging(ballotHandler.GetCategories))
	mux.HandleFunc("GET /ballot", middleware.WithLogging(ballotHandler.GetBallot))
	mux.HandleFunc("PUT /ballot/selections/{category}", middleware.WithLogging(ballotHandler.SelectNominee))
	mux.HandleFunc("POST /ballot/finalize", middleware.WithLogging(ballotHandler.Finalize))
	mux.HandleFunc("POST /ballot/cancel", middleware.WithLogging(ballotHandler.Cancel))
	mux.HandleFunc("POST /ballot/dismiss", middleware.WithLogging(ballotHandler.Dismiss))
	mux.HandleFunc("POST /ballot/submit", middleware.WithLogging(ballotHandler.SubmitBallot))
	mux.HandleFunc("GET /ballot/receipt", middleware.WithLogging(ballotHandler.GetReceipt))

	// Device
	mux.HandleFunc("POST /device/fingerprint", middleware.WithLogging(deviceHandler.Fingerprint))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ules-voting portal v1"))
	})

	return mux
}
