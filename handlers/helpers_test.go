// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sadiq-Teslim/ules-voting-sub000/fingerprint"
	"github.com/Sadiq-Teslim/ules-voting-sub000/metrics"
	"github.com/Sadiq-Teslim/ules-voting-sub000/middleware"
	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
	"github.com/Sadiq-Teslim/ules-voting-sub000/session"
	"github.com/Sadiq-Teslim/ules-voting-sub000/testutil"
)

// testHostSignals stand in for the kiosk so fingerprints are stable in tests
var testHostSignals = models.DeviceSignals{
	Canvas:              "data:image/png;base64,AAAA",
	GPUVendor:           "Intel Inc.",
	GPURenderer:         "Intel Iris OpenGL Engine",
	ScreenWidth:         1920,
	ScreenHeight:        1080,
	ColorDepth:          24,
	Language:            "en-US",
	Languages:           []string{"en-US", "en"},
	HardwareConcurrency: 8,
	DeviceMemory:        8,
	TimezoneOffset:      -60,
	Platform:            "Linux x86_64",
	Orientation:         "landscape-primary",
}

type testPortal struct {
	portal   *Portal
	sessions *SessionHandler
	ballots  *BallotHandler
	devices  *DeviceHandler
	stub     *testutil.RemoteStub
	db       *sql.DB
}

func newTestPortal(t *testing.T) *testPortal {
	t.Helper()

	stub := testutil.NewRemoteStub(t)
	conn := testutil.SetupTestDB(t)

	m, err := metrics.NewPrometheus()
	if err != nil {
		t.Fatalf("Failed to create metrics: %v", err)
	}

	p := NewPortal(
		session.NewStore(conn),
		stub.Client(),
		fingerprint.Reported{Signals: testHostSignals},
		m,
		testutil.NoSleepPolicy(2),
	)

	return &testPortal{
		portal:   p,
		sessions: NewSessionHandler(p),
		ballots:  NewBallotHandler(p),
		devices:  NewDeviceHandler(p),
		stub:     stub,
		db:       conn,
	}
}

func authHeaders(token string) map[string]string {
	return map[string]string{middleware.SessionTokenHeader: token}
}

// openSession validates the stub's registered voter and returns the token
func (tp *testPortal) openSession(t *testing.T) string {
	t.Helper()

	req := testutil.MakeRequest("POST", "/session", models.CreateSessionRequest{
		FullName:     "Ada Obi",
		MatricNumber: "190401001",
	}, nil)
	w := httptest.NewRecorder()
	tp.sessions.CreateSession(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to open session: %d %s", w.Code, w.Body.String())
	}

	var resp models.CreateSessionResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.SessionToken
}

// readyBallot opens a session, loads the catalog and picks every category
func (tp *testPortal) readyBallot(t *testing.T) string {
	t.Helper()

	token := tp.openSession(t)

	w := httptest.NewRecorder()
	tp.ballots.GetCategories(w, testutil.MakeRequest("GET", "/categories", nil, authHeaders(token)))
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to load categories: %d %s", w.Code, w.Body.String())
	}

	tp.selectNominee(t, token, "best-dressed", "Ada", http.StatusOK)
	tp.selectNominee(t, token, "most-social", "Chi", http.StatusOK)
	return token
}

// confirmedBallot is readyBallot followed by finalize
func (tp *testPortal) confirmedBallot(t *testing.T) string {
	t.Helper()

	token := tp.readyBallot(t)
	w := httptest.NewRecorder()
	tp.ballots.Finalize(w, testutil.MakeRequest("POST", "/ballot/finalize", nil, authHeaders(token)))
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to finalize: %d %s", w.Code, w.Body.String())
	}
	return token
}

func (tp *testPortal) selectNominee(t *testing.T, token, category, nominee string, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()

	req := testutil.MakeRequest("PUT", "/ballot/selections/"+category,
		models.SelectNomineeRequest{NomineeName: nominee}, authHeaders(token))
	req.SetPathValue("category", category)
	w := httptest.NewRecorder()
	tp.ballots.SelectNominee(w, req)
	testutil.AssertStatus(t, w, wantStatus)
	return w
}

func (tp *testPortal) view(t *testing.T, token string) models.BallotView {
	t.Helper()

	w := httptest.NewRecorder()
	tp.ballots.GetBallot(w, testutil.MakeRequest("GET", "/ballot", nil, authHeaders(token)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.BallotView
	testutil.AssertJSON(t, w, &view)
	return view
}

func (tp *testPortal) submit(t *testing.T, token string, body interface{}) (*httptest.ResponseRecorder, models.SubmitBallotResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	tp.ballots.SubmitBallot(w, testutil.MakeRequest("POST", "/ballot/submit", body, authHeaders(token)))

	var resp models.SubmitBallotResponse
	if w.Code == http.StatusOK || w.Code == http.StatusBadGateway {
		testutil.AssertJSON(t, w, &resp)
	}
	return w, resp
}
