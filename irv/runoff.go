// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

// Round records one count of the runoff
type Round struct {
	Number     int            `json:"number"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
	Leader     string         `json:"leader"`
	Eliminated string         `json:"eliminated,omitempty"`
}

// Outcome is the result of a runoff. Winner is empty when no candidate
// reached a majority before every ballot was exhausted.
type Outcome struct {
	Winner string  `json:"winner,omitempty"`
	Rounds []Round `json:"rounds"`
}

// Decided reports whether the runoff produced a winner
func (o *Outcome) Decided() bool {
	return o.Winner != ""
}

// Runoff runs instant runoff rounds over box until one candidate holds a
// strict majority of the counted ballots or no ballot has a leader left.
// Eliminations are applied to the ballots in box.
func Runoff(box *Box) (*Outcome, error) {
	outcome := &Outcome{Rounds: []Round{}}

	for n := 1; ; n++ {
		// Recount from scratch every round.
		tally, err := box.Count()
		if err != nil {
			return nil, err
		}

		round := Round{
			Number: n,
			Counts: tally.Counts(),
			Total:  tally.Total(),
		}

		if round.Total == 0 {
			outcome.Rounds = append(outcome.Rounds, round)
			return outcome, nil
		}

		round.Leader = tally.Max()
		if 2*tally.Lookup(round.Leader) > round.Total {
			outcome.Rounds = append(outcome.Rounds, round)
			outcome.Winner = round.Leader
			return outcome, nil
		}

		round.Eliminated = tally.Min()
		box.Eliminate(round.Eliminated)
		outcome.Rounds = append(outcome.Rounds, round)
	}
}

// Winner runs the runoff and returns only the winner. ok is false when the
// election ends without a majority.
func Winner(box *Box) (winner string, ok bool, err error) {
	outcome, err := Runoff(box)
	if err != nil {
		return "", false, err
	}
	return outcome.Winner, outcome.Decided(), nil
}
