// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Sadiq-Teslim/ules-voting-sub000/cliparse"
	"github.com/Sadiq-Teslim/ules-voting-sub000/db"
	"github.com/Sadiq-Teslim/ules-voting-sub000/fingerprint"
	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
	"github.com/Sadiq-Teslim/ules-voting-sub000/remote"
	"github.com/Sadiq-Teslim/ules-voting-sub000/retry"
)

// SetupTestDB opens a private in-memory session store with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every connection to :memory: is its own database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration pointed at the stub
func GetTestConfig(stub *RemoteStub) cliparse.Config {
	endpoints := stub.Endpoints()
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		TallyURL:      endpoints.TallyURL,
		ValidationURL: endpoints.ValidationURL,
		CatalogURL:    endpoints.CatalogURL,
		MaxRetries:    2,
		BaseDelay:     time.Millisecond,
		Display:       fingerprint.Display{Width: 1920, Height: 1080, ColorDepth: 24, Orientation: "landscape-primary"},
	}
}

// NoSleepPolicy retries like the portal does without waiting between attempts
func NoSleepPolicy(maxRetries int) retry.Policy {
	return retry.Policy{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		Sleep:      func(ctx context.Context, d time.Duration) error { return ctx.Err() },
	}
}

// TestCatalog is a two-category ballot used across handler tests
const TestCatalog = `{"categories":[
	{"id":"best-dressed","title":"Best Dressed","nominees":[{"id":"n1","name":"Ada"},{"id":"n2","name":"Bayo"}]},
	{"id":"most-social","title":"Most Social","nominees":[{"id":"n3","name":"Chi"},{"id":"n4","name":"Dami"}]}
]}`

// Response is one canned answer from the stub
type Response struct {
	Status  int
	Message string
}

// RemoteStub fakes the validation, catalog and tally services
type RemoteStub struct {
	Server *httptest.Server

	mu              sync.Mutex
	register        map[string]bool
	catalog         string
	catalogStatus   int
	submitResponses []Response
	submissions     []models.SubmissionPayload
	idempotencyKeys []string
}

// NewRemoteStub starts a stub that accepts matric number 190401001, serves
// TestCatalog and accepts every ballot.
func NewRemoteStub(t *testing.T) *RemoteStub {
	t.Helper()

	s := &RemoteStub{
		register:      map[string]bool{"190401001": true},
		catalog:       TestCatalog,
		catalogStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/validate-voter", s.handleValidate)
	mux.HandleFunc("GET /categories.json", s.handleCatalog)
	mux.HandleFunc("POST /api/submit-vote", s.handleSubmit)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Server.Close)
	return s
}

func (s *RemoteStub) Endpoints() remote.Endpoints {
	return remote.Endpoints{
		TallyURL:      s.Server.URL + "/api/submit-vote",
		ValidationURL: s.Server.URL + "/api/validate-voter",
		CatalogURL:    s.Server.URL + "/categories.json",
	}
}

// Client returns a remote client talking to the stub
func (s *RemoteStub) Client() *remote.Client {
	return remote.NewClient(s.Server.Client(), s.Endpoints())
}

// SetCatalog replaces the served catalog document and status
func (s *RemoteStub) SetCatalog(status int, doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogStatus = status
	s.catalog = doc
}

// SetSubmitResponses queues tally answers; the last one repeats
func (s *RemoteStub) SetSubmitResponses(responses ...Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitResponses = responses
}

// Submissions returns every ballot the tally service received
func (s *RemoteStub) Submissions() []models.SubmissionPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SubmissionPayload(nil), s.submissions...)
}

// IdempotencyKeys returns the Idempotency-Key of every tally request
func (s *RemoteStub) IdempotencyKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.idempotencyKeys...)
}

func (s *RemoteStub) handleValidate(w http.ResponseWriter, r *http.Request) {
	var identity models.VoterIdentity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	ok := s.register[identity.MatricNumber]
	s.mu.Unlock()

	if !ok {
		writeMessage(w, http.StatusNotFound, "Matric number not found on the voters register.")
		return
	}
	writeMessage(w, http.StatusOK, "Voter validated")
}

func (s *RemoteStub) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status, doc := s.catalogStatus, s.catalog
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(doc))
}

func (s *RemoteStub) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload models.SubmissionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	s.submissions = append(s.submissions, payload)
	s.idempotencyKeys = append(s.idempotencyKeys, r.Header.Get("Idempotency-Key"))
	resp := Response{Status: http.StatusCreated, Message: "Vote recorded"}
	if len(s.submitResponses) > 0 {
		resp = s.submitResponses[0]
		if len(s.submitResponses) > 1 {
			s.submitResponses = s.submitResponses[1:]
		}
	}
	s.mu.Unlock()

	writeMessage(w, resp.Status, resp.Message)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.RemoteMessage{Message: message})
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
