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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/online-voting/cliparse"
	"github.com/danielhkuo/online-voting/db"
)

// TestAdminKey is the admin key set in GetTestConfig.
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh test database with the full schema.
//
// By default each test gets its own SQLite file under t.TempDir(). Set
// TEST_DATABASE_TYPE=postgres and TEST_DATABASE_URL to run against Postgres;
// tables are dropped and recreated first.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	dbType := os.Getenv("TEST_DATABASE_TYPE")
	url := os.Getenv("TEST_DATABASE_URL")
	if dbType != db.TypePostgres {
		dbType = db.TypeSQLite
		url = filepath.Join(t.TempDir(), "voting_test.db")
	}

	conn, err := db.Open(ctx, dbType, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if dbType == db.TypePostgres {
		_, err = conn.Exec(`
			DROP TABLE IF EXISTS votes CASCADE;
			DROP TABLE IF EXISTS candidates CASCADE;
			DROP TABLE IF EXISTS elections CASCADE;
			DROP TABLE IF EXISTS voters CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(ctx, conn, dbType); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:test.db",
		DatabaseType: db.TypeSQLite,
		AdminKey:     TestAdminKey,
		LogLevel:     "error",
	}
}

// CreateTestVoter registers a voter and returns the voter ID
func CreateTestVoter(t *testing.T, conn *sql.DB, fullName, email string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO voters (full_name, email, created_at)
		VALUES ($1, $2, $3)
		RETURNING voter_id
	`, fullName, email, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return id
}

// CreateTestElection creates an election and returns its ID.
// startsAt and endsAt may be nil for an unbounded window.
func CreateTestElection(t *testing.T, conn *sql.DB, title string, startsAt, endsAt *time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO elections (title, description, starts_at, ends_at, created_at)
		VALUES ($1, 'A test election', $2, $3, $4)
		RETURNING election_id
	`, title, utc(startsAt), utc(endsAt), time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return id
}

// AddTestCandidate adds a candidate to an election and returns its ID
func AddTestCandidate(t *testing.T, conn *sql.DB, electionID int64, name string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO candidates (election_id, name, party, created_at)
		VALUES ($1, $2, 'Independent', $3)
		RETURNING candidate_id
	`, electionID, name, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// CastTestVote inserts a vote row directly, bypassing the ledger
func CastTestVote(t *testing.T, conn *sql.DB, voterID, electionID, candidateID int64) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO votes (voter_id, election_id, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4)
		RETURNING vote_id
	`, voterID, electionID, candidateID, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return id
}

// CountVotes returns the number of vote rows for an election
func CountVotes(t *testing.T, conn *sql.DB, electionID int64) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM votes WHERE election_id = $1`, electionID).Scan(&n); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// TimePtr returns a pointer to t
func TimePtr(t time.Time) *time.Time {
	return &t
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
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
