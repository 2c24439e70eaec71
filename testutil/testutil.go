// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-runoff/auth"
	"github.com/danielhkuo/quickly-runoff/cliparse"
	"github.com/danielhkuo/quickly-runoff/db"
	"github.com/danielhkuo/quickly-runoff/irv"
)

// SetupTestDB opens a fresh SQLite database in the test's temp dir with the
// full schema. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: "test-admin-salt",
		SlugSalt:     "test-slug-salt",
		BaseURL:      "https://example.test",
	}
}

// CreateTestElection creates an election in the database and returns its ID
// and admin key. status should be "draft", "open", or "closed"; the slug is
// empty for drafts.
func CreateTestElection(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string) (electionID, adminKey, shareSlug string) {
	t.Helper()

	electionID = auth.NewID()
	adminKey = auth.GenerateAdminKey(electionID, cfg.AdminKeySalt)

	var slug *string
	if status == "open" || status == "closed" {
		s := auth.GenerateShareSlug(electionID, cfg.SlugSalt)
		slug = &s
		shareSlug = s
	}

	var closedAt *time.Time
	if status == "closed" {
		now := time.Now().UTC()
		closedAt = &now
	}

	_, err := conn.Exec(`
		INSERT INTO election (id, title, description, creator_name, method, status, share_slug, closed_at, created_at)
		VALUES ($1, 'Test Election', 'A test election', 'TestUser', 'irv', $2, $3, $4, $5)
	`, electionID, status, slug, closedAt, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID, adminKey, shareSlug
}

// AddTestCandidate adds a candidate to an election and returns its ID
func AddTestCandidate(t *testing.T, conn *sql.DB, electionID, label string) string {
	t.Helper()

	var seq int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM candidate WHERE election_id = $1`, electionID).Scan(&seq); err != nil {
		t.Fatalf("Failed to count candidates: %v", err)
	}

	candidateID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, election_id, label, name, seq)
		VALUES ($1, $2, $3, $4, $5)
	`, candidateID, electionID, label, irv.CleanName(label), seq)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CreateTestVoter claims a username for an election and returns the voter token
func CreateTestVoter(t *testing.T, conn *sql.DB, electionID, username string) string {
	t.Helper()

	voterToken, _ := auth.GenerateVoterToken()
	_, err := conn.Exec(`
		INSERT INTO username_claim (election_id, username, voter_token, created_at)
		VALUES ($1, $2, $3, $4)
	`, electionID, username, voterToken, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterToken
}

// SubmitTestBallot stores a ballot ranking the given candidate IDs, first
// choice first, and returns the ballot ID
func SubmitTestBallot(t *testing.T, conn *sql.DB, electionID, voterToken string, ranking []string) string {
	t.Helper()

	ballotID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO ballot (id, election_id, voter_token, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, ballotID, electionID, voterToken, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	for position, candidateID := range ranking {
		_, err := conn.Exec(`
			INSERT INTO ranking (ballot_id, position, candidate_id)
			VALUES ($1, $2, $3)
		`, ballotID, position, candidateID)
		if err != nil {
			t.Fatalf("Failed to create test ranking: %v", err)
		}
	}

	return ballotID
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
