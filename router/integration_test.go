// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/online-voting/auth"
	"github.com/danielhkuo/online-voting/metrics"
	"github.com/danielhkuo/online-voting/middleware"
	"github.com/danielhkuo/online-voting/models"
	"github.com/danielhkuo/online-voting/testutil"
)

// TestFullVotingWorkflow drives a complete election through the wrapped
// handler stack: setup, registration, voting, recast and results.
func TestFullVotingWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := metrics.New()
	server := httptest.NewServer(m.Instrument(middleware.CORS(NewRouter(db, testutil.GetTestConfig(), m))))
	defer server.Close()

	client := server.Client()
	admin := map[string]string{auth.AdminKeyHeader: testutil.TestAdminKey}

	do := func(method, path string, body interface{}, headers map[string]string, out interface{}) int {
		t.Helper()
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("Failed to marshal body: %v", err)
			}
			reader = bytes.NewReader(raw)
		}
		req, err := http.NewRequest(method, server.URL+path, reader)
		if err != nil {
			t.Fatalf("Failed to build request: %v", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("%s %s failed: %v", method, path, err)
		}
		defer resp.Body.Close()
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				t.Fatalf("%s %s: failed to decode response: %v", method, path, err)
			}
		}
		return resp.StatusCode
	}

	// Step 1: Admin creates an election
	var election models.CreateElectionResponse
	status := do("POST", "/elections", map[string]string{
		"title":       "Student Council",
		"description": "Spring term",
	}, admin, &election)
	if status != http.StatusCreated {
		t.Fatalf("Create election: expected 201, got %d", status)
	}
	electionPath := fmt.Sprintf("/elections/%d", election.ElectionID)

	// Step 2: Admin adds candidates
	candidateIDs := map[string]int64{}
	for _, name := range []string{"A", "B"} {
		var cand models.CreateCandidateResponse
		status = do("POST", electionPath+"/candidates", map[string]string{"name": name}, admin, &cand)
		if status != http.StatusCreated {
			t.Fatalf("Add candidate %s: expected 201, got %d", name, status)
		}
		candidateIDs[name] = cand.CandidateID
	}

	// Step 3: Voters register through the public endpoint
	for _, email := range []string{"alice@example.com", "bob@example.com", "carol@example.com"} {
		status = do("POST", "/voters", models.CreateVoterRequest{
			FullName: strings.Split(email, "@")[0],
			Email:    email,
		}, nil, nil)
		if status != http.StatusCreated {
			t.Fatalf("Register %s: expected 201, got %d", email, status)
		}
	}

	// Step 4: Votes arrive over both interfaces
	cast := func(email, candidate string) int {
		return do("POST", "/votes", models.CastVoteRequest{
			Email:       email,
			ElectionID:  election.ElectionID,
			CandidateID: candidateIDs[candidate],
		}, nil, nil)
	}
	if status = cast("alice@example.com", "A"); status != http.StatusOK {
		t.Fatalf("Alice vote: expected 200, got %d", status)
	}
	if status = cast("bob@example.com", "B"); status != http.StatusOK {
		t.Fatalf("Bob vote: expected 200, got %d", status)
	}

	form := url.Values{
		"email":        {"carol@example.com"},
		"election_id":  {fmt.Sprint(election.ElectionID)},
		"candidate_id": {fmt.Sprint(candidateIDs["A"])},
	}
	resp, err := client.Post(server.URL+"/api?action=cast_vote", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("Form vote failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Carol vote: expected 200, got %d", resp.StatusCode)
	}

	// Step 5: A recast is rejected
	if status = cast("alice@example.com", "B"); status != http.StatusConflict {
		t.Fatalf("Alice recast: expected 409, got %d", status)
	}

	// Step 6: Results
	var rows []models.TallyRow
	if status = do("GET", electionPath+"/results", nil, nil, &rows); status != http.StatusOK {
		t.Fatalf("Results: expected 200, got %d", status)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 tally rows, got %d", len(rows))
	}
	if rows[0].Name != "A" || rows[0].Votes != 2 {
		t.Errorf("Expected A with 2 votes first, got %+v", rows[0])
	}
	if rows[1].Name != "B" || rows[1].Votes != 1 {
		t.Errorf("Expected B with 1 vote second, got %+v", rows[1])
	}

	var viaAction []models.TallyRow
	status = do("GET", fmt.Sprintf("/api?action=results&election_id=%d", election.ElectionID), nil, nil, &viaAction)
	if status != http.StatusOK || len(viaAction) != 2 || viaAction[0].Votes != 2 {
		t.Errorf("Action results: status %d, rows %+v", status, viaAction)
	}

	// Step 7: The election cannot be deleted once votes exist
	if status = do("DELETE", electionPath, nil, admin, nil); status != http.StatusConflict {
		t.Errorf("Delete election with votes: expected 409, got %d", status)
	}

	if n := testutil.CountVotes(t, db, election.ElectionID); n != 3 {
		t.Errorf("Expected 3 stored votes, got %d", n)
	}
}

func TestPreflightThroughStack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := metrics.New()
	handler := m.Instrument(middleware.CORS(NewRouter(db, testutil.GetTestConfig(), m)))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/api?action=cast_vote", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
}
