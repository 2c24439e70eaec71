// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the quickly-runoff API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ElectionHandler: Election lifecycle (create, candidates, publish, close)
  - VotingHandler: Username claims and ranked ballot submission
  - ResultsHandler: Election info and sealed results

	electionHandler := handlers.NewElectionHandler(db, cfg)

# Election Lifecycle

Elections progress through three states: draft → open → closed

	POST /elections                 → CreateElection (returns admin_key)
	POST /elections/{id}/candidates → AddCandidate (draft only)
	POST /elections/{id}/publish    → PublishElection (generates share_slug)
	POST /elections/{id}/close      → CloseElection (runs the runoff)

Admin operations require the X-Admin-Key header.

# Voting Flow

Voters interact via the share slug:

	POST /elections/{slug}/claim-username → ClaimUsername (returns voter_token)
	POST /elections/{slug}/ballots        → SubmitBallot (create or replace)
	GET  /elections/{slug}/my-ballot      → GetMyBallot

A ballot is an ordered list of candidate IDs, first choice first. Voter
operations require the X-Voter-Token header.

# Runoff

CloseElection loads every stored ranking into an irv.Box and calls
irv.Runoff inside the closing transaction:

	result, err := ComputeRunoff(tx, electionID)

The winner and every round are stored once as a result snapshot. Nothing
about the runoff is kept between requests.
*/
package handlers
