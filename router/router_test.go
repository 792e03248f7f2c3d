// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/online-voting/auth"
	"github.com/danielhkuo/online-voting/metrics"
	"github.com/danielhkuo/online-voting/models"
	"github.com/danielhkuo/online-voting/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), metrics.New())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}

	db.Close()

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 after close, got %d", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	expected := "online-voting API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/no-such-route", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := metrics.New()
	mux := NewRouter(db, testutil.GetTestConfig(), m)

	// A rejected cast shows up in the vote counter
	req := testutil.MakeRequest("POST", "/votes", map[string]string{"email": "x@example.com"}, nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `voting_votes_cast_total{outcome="rejected"} 1`) {
		t.Errorf("Expected rejected vote counter in metrics output:\n%s", w.Body.String())
	}
}

func TestAdminGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	body := map[string]string{"title": "Board Election"}

	testCases := []struct {
		name           string
		path           string
		headers        map[string]string
		expectedStatus int
	}{
		{"REST without key", "/elections", nil, http.StatusUnauthorized},
		{"REST with wrong key", "/elections", map[string]string{auth.AdminKeyHeader: "nope"}, http.StatusUnauthorized},
		{"REST with key", "/elections", map[string]string{auth.AdminKeyHeader: testutil.TestAdminKey}, http.StatusCreated},
		{"action without key", "/api?action=create_election", nil, http.StatusUnauthorized},
		{"action with key", "/api?action=create_election", map[string]string{auth.AdminKeyHeader: testutil.TestAdminKey}, http.StatusCreated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest("POST", tc.path, body, tc.headers))

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}

	// Registration stays public
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/voters",
		models.CreateVoterRequest{FullName: "Alice", Email: "alice@example.com"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestAdminGuardDisabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.AdminKey = ""
	mux := NewRouter(db, cfg, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/elections", map[string]string{"title": "Open"}, nil))

	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestActionDispatcher(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"list voters", "GET", "/api?action=list_voters", http.StatusOK},
		{"list elections", "GET", "/api?action=list_elections", http.StatusOK},
		{"list candidates", "GET", "/api.php?action=list_candidates", http.StatusOK},
		{"results without election", "GET", "/api?action=results", http.StatusBadRequest},
		{"unknown action", "GET", "/api?action=drop_tables", http.StatusBadRequest},
		{"missing action", "GET", "/api", http.StatusBadRequest},
		{"wrong method", "GET", "/api?action=cast_vote", http.StatusBadRequest},
		{"wrong method for list", "POST", "/api?action=list_voters", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api?action=nope", nil))

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Invalid action or method" || resp.Error != resp.Message {
		t.Errorf("Expected 'Invalid action or method' in both fields, got %+v", resp)
	}
}

func TestActionErrorText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	electionID := testutil.CreateTestElection(t, db, "E1", nil, nil)
	candID := testutil.AddTestCandidate(t, db, electionID, "A")
	testutil.CreateTestVoter(t, db, "Alice", "alice@example.com")

	cast := func(email string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api.php?action=cast_vote", models.CastVoteRequest{
			Email:       email,
			ElectionID:  electionID,
			CandidateID: candID,
		}, nil))
		return w
	}

	testCases := []struct {
		name           string
		email          string
		expectedStatus int
		expectedError  string
	}{
		{"unregistered", "nobody@example.com", http.StatusBadRequest, "voter not registered"},
		{"first vote", "alice@example.com", http.StatusOK, ""},
		{"recast", "alice@example.com", http.StatusConflict, "voter has already voted in this election"},
	}

	for _, tc := range testCases {
		w := cast(tc.email)
		testutil.AssertStatus(t, w, tc.expectedStatus)
		if tc.expectedError == "" {
			continue
		}
		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Error != tc.expectedError {
			t.Errorf("%s: expected error %q, got %q", tc.name, tc.expectedError, resp.Error)
		}
	}

	// REST keeps the status text in the error field
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
		Email:       "alice@example.com",
		ElectionID:  electionID,
		CandidateID: candID,
	}, nil))
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "Conflict" || resp.Message != "voter has already voted in this election" {
		t.Errorf("Unexpected REST error body: %+v", resp)
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), metrics.New())

	admin := map[string]string{auth.AdminKeyHeader: testutil.TestAdminKey}

	// Every route reaches a handler; 404 from the mux would mean no match
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"GET", "/voters"},
		{"POST", "/voters"},
		{"PUT", "/voters/1"},
		{"DELETE", "/voters/abc"},
		{"GET", "/elections"},
		{"POST", "/elections"},
		{"PUT", "/elections/abc"},
		{"DELETE", "/elections/abc"},
		{"POST", "/elections/1/candidates"},
		{"GET", "/elections/1/candidates"},
		{"GET", "/candidates"},
		{"PUT", "/candidates/abc"},
		{"DELETE", "/candidates/abc"},
		{"POST", "/votes"},
		{"GET", "/elections/1/results"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest(tc.method, tc.path, nil, admin))

			if w.Code == http.StatusNotFound || w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s not registered (status %d)", tc.method, tc.path, w.Code)
			}
		})
	}
}
