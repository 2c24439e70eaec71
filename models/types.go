// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/quickly-runoff/irv"
)

// Election status constants
const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Voting method constants
const (
	MethodIRV = "irv"
)

// Request types

type CreateElectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatorName string `json:"creator_name"`
}

type AddCandidateRequest struct {
	Label string `json:"label"`
}

type ClaimUsernameRequest struct {
	Username string `json:"username"`
}

// Candidate IDs, first choice first
type SubmitBallotRequest struct {
	Ranking []string `json:"ranking"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
	AdminKey   string `json:"admin_key"`
}

type AddCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
}

type PublishElectionResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type ClaimUsernameResponse struct {
	VoterToken string `json:"voter_token"`
}

type SubmitBallotResponse struct {
	BallotID string `json:"ballot_id"`
	Message  string `json:"message"`
}

type MyBallotResponse struct {
	BallotID    string      `json:"ballot_id"`
	SubmittedAt time.Time   `json:"submitted_at"`
	Ranking     []Candidate `json:"ranking"`
}

type CloseElectionResponse struct {
	ClosedAt time.Time      `json:"closed_at"`
	Snapshot ResultSnapshot `json:"snapshot"`
}

type ResultsResponse struct {
	Election    Election    `json:"election"`
	Candidates  []Candidate `json:"candidates"`
	Winner      *Candidate  `json:"winner"`
	Rounds      []irv.Round `json:"rounds"`
	BallotCount int         `json:"ballot_count"`
}

type BallotCountResponse struct {
	BallotCount int `json:"ballot_count"`
}

// Domain types

type Election struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CreatorName     string     `json:"creator_name"`
	Method          string     `json:"method"`
	Status          string     `json:"status"`
	ShareSlug       *string    `json:"share_slug,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	FinalSnapshotID *string    `json:"final_snapshot_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Candidate is one choice on the ballot. Name is the canonical form of
// Label used by the runoff.
type Candidate struct {
	ID         string `json:"id"`
	ElectionID string `json:"election_id"`
	Label      string `json:"label"`
	Name       string `json:"name"`
}

type ElectionWithCandidates struct {
	Election   Election    `json:"election"`
	Candidates []Candidate `json:"candidates"`
}

// ResultSnapshot is the immutable outcome stored when an election closes
type ResultSnapshot struct {
	ID         string      `json:"id"`
	ElectionID string      `json:"election_id"`
	Method     string      `json:"method"`
	ComputedAt time.Time   `json:"computed_at"`
	Winner     string      `json:"winner,omitempty"` // canonical name, empty for no winner
	Rounds     []irv.Round `json:"rounds"`
	InputsHash string      `json:"inputs_hash"` // SHA-256 of the sorted ballot IDs
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
