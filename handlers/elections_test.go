// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/online-voting/models"
	"github.com/danielhkuo/online-voting/store"
	"github.com/danielhkuo/online-voting/testutil"
)

func TestCreateElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewElectionHandler(store.New(db))

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name: "full window",
			requestBody: map[string]interface{}{
				"title":       "Board Election",
				"description": "Annual board seats",
				"starts_at":   "2026-01-01T09:00:00Z",
				"ends_at":     "2026-01-31 17:00:00",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "title only",
			requestBody:    map[string]interface{}{"title": "Open Election"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing title",
			requestBody:    map[string]interface{}{"description": "no title"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "ends before start",
			requestBody: map[string]interface{}{
				"title":     "Backwards",
				"starts_at": "2026-02-01",
				"ends_at":   "2026-01-01",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unparseable time",
			requestBody:    map[string]interface{}{"title": "Bad Time", "starts_at": "next tuesday"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/elections", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreateElectionResponse
				testutil.AssertJSON(t, w, &resp)
				if !resp.Success || resp.ElectionID <= 0 {
					t.Errorf("Expected election_id, got %+v", resp)
				}
			}
		})
	}
}

func TestGetElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewElectionHandler(store.New(db))

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	electionID := testutil.CreateTestElection(t, db, "Board Election", &start, nil)

	req := httptest.NewRequest("GET", "/elections/"+itoa(electionID), nil)
	req.SetPathValue("id", itoa(electionID))
	w := httptest.NewRecorder()
	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var election models.Election
	testutil.AssertJSON(t, w, &election)
	if election.Title != "Board Election" {
		t.Errorf("Expected title Board Election, got %s", election.Title)
	}
	if election.StartsAt == nil || !election.StartsAt.Equal(start) {
		t.Errorf("Expected starts_at %v, got %v", start, election.StartsAt)
	}
	if election.EndsAt != nil {
		t.Errorf("Expected null ends_at, got %v", election.EndsAt)
	}

	req = httptest.NewRequest("GET", "/elections/9999", nil)
	req.SetPathValue("id", "9999")
	w = httptest.NewRecorder()
	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListElections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewElectionHandler(store.New(db))

	testutil.CreateTestElection(t, db, "First", nil, nil)
	testutil.CreateTestElection(t, db, "Second", nil, nil)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest("GET", "/elections", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var elections []models.Election
	testutil.AssertJSON(t, w, &elections)
	if len(elections) != 2 {
		t.Fatalf("Expected 2 elections, got %d", len(elections))
	}
}

func TestUpdateElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewElectionHandler(store.New(db))

	electionID := testutil.CreateTestElection(t, db, "Draft Title", nil, nil)

	tests := []struct {
		name           string
		pathID         string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "rename and close",
			pathID:         itoa(electionID),
			requestBody:    map[string]interface{}{"title": "Final Title", "ends_at": "2020-01-01T00:00:00Z"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing election",
			pathID:         "9999",
			requestBody:    map[string]interface{}{"title": "Ghost"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing title",
			pathID:         itoa(electionID),
			requestBody:    map[string]interface{}{"description": "x"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("PUT", "/elections/"+tt.pathID, tt.requestBody, nil)
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			handler.Update(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	var title string
	var endsAt sql.NullTime
	if err := db.QueryRow(`SELECT title, ends_at FROM elections WHERE election_id = $1`, electionID).Scan(&title, &endsAt); err != nil {
		t.Fatalf("Failed to query election: %v", err)
	}
	if title != "Final Title" {
		t.Errorf("Expected Final Title, got %s", title)
	}
	if !endsAt.Valid {
		t.Error("Expected ends_at to be set")
	}
}

func TestDeleteElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewElectionHandler(store.New(db))

	empty := testutil.CreateTestElection(t, db, "No Votes", nil, nil)
	testutil.AddTestCandidate(t, db, empty, "Ada")

	withVotes := testutil.CreateTestElection(t, db, "Has Votes", nil, nil)
	candID := testutil.AddTestCandidate(t, db, withVotes, "Ben")
	voterID := testutil.CreateTestVoter(t, db, "Alice Smith", "alice@example.com")
	testutil.CastTestVote(t, db, voterID, withVotes, candID)

	tests := []struct {
		name           string
		pathID         string
		expectedStatus int
	}{
		{"election without votes", itoa(empty), http.StatusOK},
		{"election with votes", itoa(withVotes), http.StatusConflict},
		{"missing election", "9999", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("DELETE", "/elections/"+tt.pathID, nil)
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			handler.Delete(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// Candidates cascade with their election
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM candidates WHERE election_id = $1`, empty).Scan(&n); err != nil {
		t.Fatalf("Failed to count candidates: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected candidates to be deleted with election, got %d", n)
	}
}
