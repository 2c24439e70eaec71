// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/danielhkuo/quickly-runoff/irv"
)

// RunoffResult is a computed outcome plus the hash of the ballots it used
type RunoffResult struct {
	Outcome    *irv.Outcome
	BallotIDs  []string
	InputsHash string
}

// ComputeRunoff loads every ballot of an election and runs instant runoff
// over them. Each call builds its own box, so nothing is shared between
// requests.
func ComputeRunoff(q queryer, electionID string) (*RunoffResult, error) {
	box, ballotIDs, err := loadBox(q, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ballots: %w", err)
	}

	outcome, err := irv.Runoff(box)
	if err != nil {
		return nil, fmt.Errorf("failed to run runoff: %w", err)
	}

	return &RunoffResult{
		Outcome:    outcome,
		BallotIDs:  ballotIDs,
		InputsHash: computeInputsHash(ballotIDs),
	}, nil
}

// loadBox reads rankings ordered by ballot then position, so each ballot's
// entries are inserted in preference order.
func loadBox(q queryer, electionID string) (*irv.Box, []string, error) {
	rows, err := q.Query(`
		SELECT b.id, c.name
		FROM ballot b
		JOIN ranking r ON r.ballot_id = b.id
		JOIN candidate c ON c.id = r.candidate_id
		WHERE b.election_id = $1
		ORDER BY b.id, r.position
	`, electionID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	box := irv.NewBox()
	var ballotIDs []string
	var current *irv.Ballot
	for rows.Next() {
		var ballotID, name string
		if err := rows.Scan(&ballotID, &name); err != nil {
			return nil, nil, err
		}

		if len(ballotIDs) == 0 || ballotIDs[len(ballotIDs)-1] != ballotID {
			current = irv.NewBallot()
			box.Insert(current)
			ballotIDs = append(ballotIDs, ballotID)
		}

		if err := current.Insert(name); err != nil {
			return nil, nil, fmt.Errorf("ballot %s: %w", ballotID, err)
		}
	}

	return box, ballotIDs, rows.Err()
}

// computeInputsHash hashes the sorted ballot IDs so a snapshot can be checked
// against the ballots it was computed from
func computeInputsHash(sortedBallotIDs []string) string {
	h := sha256.New()
	for _, id := range sortedBallotIDs {
		h.Write([]byte(id))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
