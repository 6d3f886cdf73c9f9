// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Sadiq-Teslim/ules-voting-sub000/auth"
	"github.com/Sadiq-Teslim/ules-voting-sub000/ballot"
	"github.com/Sadiq-Teslim/ules-voting-sub000/fingerprint"
	"github.com/Sadiq-Teslim/ules-voting-sub000/metrics"
	"github.com/Sadiq-Teslim/ules-voting-sub000/middleware"
	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
	"github.com/Sadiq-Teslim/ules-voting-sub000/remote"
	"github.com/Sadiq-Teslim/ules-voting-sub000/retry"
	"github.com/Sadiq-Teslim/ules-voting-sub000/session"
)

// Portal holds what every handler shares: the session store, the remote
// services and the live ballots of the tabs currently voting.
type Portal struct {
	store    *session.Store
	remote   *remote.Client
	host     fingerprint.Source
	metrics  *metrics.Prometheus
	policy   retry.Policy
	validate *validator.Validate

	mu       sync.Mutex
	sessions map[string]*voterSession
}

// voterSession is one tab's ballot and the catalog it was loaded against
type voterSession struct {
	mu      sync.Mutex
	machine *ballot.Machine
	catalog *models.Catalog
}

func NewPortal(store *session.Store, client *remote.Client, host fingerprint.Source, m *metrics.Prometheus, policy retry.Policy) *Portal {
	return &Portal{
		store:    store,
		remote:   client,
		host:     host,
		metrics:  m,
		policy:   policy,
		validate: validator.New(),
		sessions: make(map[string]*voterSession),
	}
}

var errNoSession = errors.New("no session")

// sessionToken returns the request's token, writing a 401 when it is missing
// or malformed.
func sessionToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := middleware.SessionToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.SessionTokenHeader+" header required")
		return "", false
	}
	if err := auth.ValidateSessionToken(token); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return "", false
	}
	return token, true
}

// lookup returns the tab's live ballot, rebuilding it from the stored
// identity when the portal restarted since the voter validated.
func (p *Portal) lookup(ctx context.Context, token string) (*voterSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.sessions[token]; ok {
		return s, nil
	}

	identity, err := p.store.LoadIdentity(ctx, token)
	if errors.Is(err, session.ErrNoIdentity) {
		return nil, errNoSession
	}
	if err != nil {
		return nil, err
	}

	s, err := p.newVoterSession(token, identity)
	if err != nil {
		return nil, err
	}
	p.sessions[token] = s
	return s, nil
}

// requireSession resolves the request's ballot or writes the error response.
func (p *Portal) requireSession(w http.ResponseWriter, r *http.Request) (string, *voterSession, bool) {
	token, ok := sessionToken(w, r)
	if !ok {
		return "", nil, false
	}

	s, err := p.lookup(r.Context(), token)
	if errors.Is(err, errNoSession) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Please validate your matric number first")
		return "", nil, false
	}
	if err != nil {
		slog.Error("failed to load session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load session")
		return "", nil, false
	}
	return token, s, true
}

func (p *Portal) newVoterSession(token string, identity models.VoterIdentity) (*voterSession, error) {
	policy := p.policy
	onRetry := policy.OnRetry
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		p.metrics.SubmitRetried()
		if onRetry != nil {
			onRetry(attempt, delay, err)
		}
	}

	machine, err := ballot.NewMachine(ballot.Config{
		Identity:  identity,
		Submitter: countingSubmitter{client: p.remote, metrics: p.metrics},
		Policy:    policy,
		OnSucceeded: func(ctx context.Context, r models.Receipt) error {
			// cleanup outlives the request
			ctx = context.WithoutCancel(ctx)
			if err := p.store.Clear(ctx, token); err != nil {
				return err
			}
			return p.store.SaveReceipt(ctx, token, r)
		},
		OnOutcome: func(s ballot.State, err error) {
			p.metrics.SubmissionFinished(s.String())
		},
	})
	if err != nil {
		return nil, err
	}
	return &voterSession{machine: machine}, nil
}

// closeSession retires the tab's live ballot and clears its stored
// identity. Holding mu keeps lookup from rebuilding the ballot midway.
func (p *Portal) closeSession(ctx context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.sessions[token]; ok {
		if err := s.machine.Retire(); err != nil {
			return err
		}
		delete(p.sessions, token)
	}
	return p.store.Clear(ctx, token)
}

// countingSubmitter counts every call made to the tally service
type countingSubmitter struct {
	client  *remote.Client
	metrics *metrics.Prometheus
}

func (c countingSubmitter) Submit(ctx context.Context, payload models.SubmissionPayload) (string, error) {
	c.metrics.SubmitAttempted()
	return c.client.Submit(ctx, payload)
}

// fingerprinter picks the reported browser signals when the UI sent them,
// the host device otherwise.
func (p *Portal) fingerprinter(signals *models.DeviceSignals) (fingerprint.Generator, string) {
	src, name := p.host, "host"
	if signals != nil {
		src, name = fingerprint.Reported{Signals: *signals}, "reported"
	}
	return fingerprint.Generator{
		Source: src,
		OnFault: func(signal string, err error) {
			p.metrics.FingerprintFault(signal)
		},
	}, name
}

// transitionStatus maps ballot errors to HTTP status codes.
func transitionStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ballot.ErrSubmissionInFlight):
		return http.StatusConflict, "A submission is already in progress"
	case errors.Is(err, ballot.ErrCatalogNotLoaded):
		return http.StatusConflict, "Categories have not been loaded"
	case errors.Is(err, ballot.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ballot.ErrIdentityRequired):
		return http.StatusUnauthorized, "Please validate your matric number first"
	}
	return http.StatusInternalServerError, "Unexpected ballot error"
}
