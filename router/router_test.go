// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sadiq-Teslim/ules-voting-sub000/fingerprint"
	"github.com/Sadiq-Teslim/ules-voting-sub000/handlers"
	"github.com/Sadiq-Teslim/ules-voting-sub000/metrics"
	"github.com/Sadiq-Teslim/ules-voting-sub000/middleware"
	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
	"github.com/Sadiq-Teslim/ules-voting-sub000/session"
	"github.com/Sadiq-Teslim/ules-voting-sub000/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *testutil.RemoteStub) {
	t.Helper()

	stub := testutil.NewRemoteStub(t)
	cfg := testutil.GetTestConfig(stub)

	m, err := metrics.NewPrometheus()
	if err != nil {
		t.Fatalf("Failed to create metrics: %v", err)
	}

	portal := handlers.NewPortal(
		session.NewStore(testutil.SetupTestDB(t)),
		stub.Client(),
		fingerprint.NewHostSource(cfg.Display),
		m,
		testutil.NoSleepPolicy(cfg.MaxRetries),
	)
	return NewRouter(portal, m), stub
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	expected := "ules-voting portal v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	mux, _ := newTestRouter(t)

	for _, path := range []string{"/ballots", "/session/extra", "/nope"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected status 404, got %d", path, w.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	// one fingerprint with no browser signals exercises the host source
	fp := httptest.NewRecorder()
	mux.ServeHTTP(fp, httptest.NewRequest("POST", "/device/fingerprint", nil))
	if fp.Code != http.StatusOK {
		t.Fatalf("Expected fingerprint status 200, got %d", fp.Code)
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ules_voting_submit_attempts_total") {
		t.Errorf("Expected submit attempts counter, got: %s", w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	// 400, 401, 404 are all valid here; only a 405 means the route is missing
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"GET", "/"},

		{"POST", "/session"},
		{"GET", "/session"},
		{"DELETE", "/session"},

		{"GET", "/categories"},
		{"GET", "/ballot"},
		{"PUT", "/ballot/selections/best-dressed"},
		{"POST", "/ballot/finalize"},
		{"POST", "/ballot/cancel"},
		{"POST", "/ballot/dismiss"},
		{"POST", "/ballot/submit"},
		{"GET", "/ballot/receipt"},

		{"POST", "/device/fingerprint"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/session"},
		{"POST", "/ballot"},
		{"GET", "/ballot/submit"},
		{"POST", "/ballot/selections/best-dressed"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux, _ := newTestRouter(t)

	create := httptest.NewRecorder()
	mux.ServeHTTP(create, testutil.MakeRequest("POST", "/session", models.CreateSessionRequest{
		FullName:     "Ada Obi",
		MatricNumber: "190401001",
	}, nil))
	testutil.AssertStatus(t, create, http.StatusCreated)

	var opened models.CreateSessionResponse
	testutil.AssertJSON(t, create, &opened)
	headers := map[string]string{middleware.SessionTokenHeader: opened.SessionToken}

	cats := httptest.NewRecorder()
	mux.ServeHTTP(cats, testutil.MakeRequest("GET", "/categories", nil, headers))
	testutil.AssertStatus(t, cats, http.StatusOK)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("PUT", "/ballot/selections/most-social",
		models.SelectNomineeRequest{NomineeName: "Chi"}, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.BallotView
	testutil.AssertJSON(t, w, &view)
	if view.Selections["most-social"] != "Chi" {
		t.Errorf("Expected category from path to be selected, got %v", view.Selections)
	}
}
