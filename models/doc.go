// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateElectionRequest: title, description, creator_name
  - AddCandidateRequest: label
  - ClaimUsernameRequest: username
  - SubmitBallotRequest: ranking (candidate IDs, first choice first)

# Response Types

  - CreateElectionResponse: election_id, admin_key
  - AddCandidateResponse: candidate_id, name
  - PublishElectionResponse: share_slug, share_url
  - ClaimUsernameResponse: voter_token
  - SubmitBallotResponse: ballot_id, message
  - MyBallotResponse: ballot_id, submitted_at, ranking
  - CloseElectionResponse: closed_at, snapshot
  - ResultsResponse: election, candidates, winner, rounds, ballot_count
  - BallotCountResponse: ballot_count
  - ErrorResponse: error, message

# Domain Types

  - Election: election metadata and lifecycle state
  - Candidate: label plus its canonical runoff name
  - Ballot: voter submission metadata
  - ResultSnapshot: immutable runoff outcome (winner, rounds, inputs hash)

Rounds reuse irv.Round so the stored snapshot matches what the runoff
produced.

# Constants

Status values:

	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"

Voting method:

	MethodIRV = "irv"
*/
package models
