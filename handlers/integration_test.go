// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-runoff/models"
	"github.com/danielhkuo/quickly-runoff/testutil"
)

// TestFullElectionWorkflow drives an election from creation to results:
// create, add candidates, publish, claim usernames, vote, revote, close.
func TestFullElectionWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	electionHandler := NewElectionHandler(db, cfg)
	votingHandler := NewVotingHandler(db, cfg)
	resultsHandler := NewResultsHandler(db, cfg)

	// Step 1: Create an election
	req := testutil.MakeRequest("POST", "/elections", models.CreateElectionRequest{
		Title:       "Team Lunch",
		Description: "Ranked choice",
		CreatorName: "Organizer",
	}, nil)
	w := httptest.NewRecorder()
	electionHandler.CreateElection(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create election failed: %d - %s", w.Code, w.Body.String())
	}

	var createResp models.CreateElectionResponse
	testutil.AssertJSON(t, w, &createResp)
	electionID := createResp.ElectionID
	adminKey := createResp.AdminKey
	admin := map[string]string{"X-Admin-Key": adminKey}

	// Step 2: Add candidates
	ids := map[string]string{}
	for _, label := range []string{"Pizza", "Sushi", "Tacos"} {
		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/candidates",
			models.AddCandidateRequest{Label: label}, admin)
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		electionHandler.AddCandidate(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Add candidate '%s' failed: %d - %s", label, w.Code, w.Body.String())
		}

		var resp models.AddCandidateResponse
		testutil.AssertJSON(t, w, &resp)
		ids[label] = resp.CandidateID
	}

	// Step 3: Publish
	req = testutil.MakeRequest("POST", "/elections/"+electionID+"/publish", nil, admin)
	req.SetPathValue("id", electionID)
	w = httptest.NewRecorder()
	electionHandler.PublishElection(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Publish failed: %d - %s", w.Code, w.Body.String())
	}

	var publishResp models.PublishElectionResponse
	testutil.AssertJSON(t, w, &publishResp)
	shareSlug := publishResp.ShareSlug

	// Step 4: Voters claim usernames and vote
	ballots := map[string][]string{
		"Alice":   {ids["Pizza"], ids["Tacos"]},
		"Bob":     {ids["Pizza"], ids["Sushi"]},
		"Charlie": {ids["Sushi"], ids["Tacos"]},
		"Dana":    {ids["Tacos"], ids["Sushi"]},
		"Eve":     {ids["Pizza"]},
	}
	tokens := map[string]string{}
	for _, username := range []string{"Alice", "Bob", "Charlie", "Dana", "Eve"} {
		req := testutil.MakeRequest("POST", "/elections/"+shareSlug+"/claim-username",
			models.ClaimUsernameRequest{Username: username}, nil)
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()
		votingHandler.ClaimUsername(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 4 - Claim username '%s' failed: %d - %s", username, w.Code, w.Body.String())
		}

		var claimResp models.ClaimUsernameResponse
		testutil.AssertJSON(t, w, &claimResp)
		tokens[username] = claimResp.VoterToken

		req = testutil.MakeRequest("POST", "/elections/"+shareSlug+"/ballots",
			models.SubmitBallotRequest{Ranking: ballots[username]},
			map[string]string{"X-Voter-Token": claimResp.VoterToken})
		req.SetPathValue("slug", shareSlug)
		w = httptest.NewRecorder()
		votingHandler.SubmitBallot(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 4 - Ballot from '%s' failed: %d - %s", username, w.Code, w.Body.String())
		}
	}

	// Results stay sealed while voting is open
	req = httptest.NewRequest("GET", "/elections/"+shareSlug+"/results", nil)
	req.SetPathValue("slug", shareSlug)
	w = httptest.NewRecorder()
	resultsHandler.GetResults(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Step 5: Eve changes their mind, leaving Pizza short of a majority
	req = testutil.MakeRequest("POST", "/elections/"+shareSlug+"/ballots",
		models.SubmitBallotRequest{Ranking: []string{ids["Tacos"]}},
		map[string]string{"X-Voter-Token": tokens["Eve"]})
	req.SetPathValue("slug", shareSlug)
	w = httptest.NewRecorder()
	votingHandler.SubmitBallot(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 5 - Update ballot failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 6: Close
	req = testutil.MakeRequest("POST", "/elections/"+electionID+"/close", nil, admin)
	req.SetPathValue("id", electionID)
	w = httptest.NewRecorder()
	electionHandler.CloseElection(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Close failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 7: Results. First count is Pizza 2, Tacos 2, Sushi 1. Sushi goes
	// and Charlie's ballot moves to Tacos, which then holds 3 of 5.
	req = httptest.NewRequest("GET", "/elections/"+shareSlug+"/results", nil)
	req.SetPathValue("slug", shareSlug)
	w = httptest.NewRecorder()
	resultsHandler.GetResults(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Get results failed: %d - %s", w.Code, w.Body.String())
	}

	var results models.ResultsResponse
	testutil.AssertJSON(t, w, &results)

	if results.Winner == nil || results.Winner.ID != ids["Tacos"] {
		t.Fatalf("Expected Tacos to win, got %+v", results.Winner)
	}
	if results.BallotCount != 5 {
		t.Errorf("Expected 5 ballots, got %d", results.BallotCount)
	}
	if len(results.Rounds) != 2 {
		t.Fatalf("Expected 2 rounds, got %d", len(results.Rounds))
	}
	if results.Rounds[0].Eliminated != "SUSHI" {
		t.Errorf("Expected SUSHI eliminated first, got %q", results.Rounds[0].Eliminated)
	}

	// Voting is over
	req = testutil.MakeRequest("POST", "/elections/"+shareSlug+"/claim-username",
		models.ClaimUsernameRequest{Username: "Latecomer"}, nil)
	req.SetPathValue("slug", shareSlug)
	w = httptest.NewRecorder()
	votingHandler.ClaimUsername(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}
