// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import "fmt"

// Box is the unordered collection of every ballot in an election
type Box struct {
	ballots []*Ballot
}

// NewBox creates a box holding the given ballots
func NewBox(ballots ...*Ballot) *Box {
	bb := &Box{ballots: make([]*Ballot, 0, len(ballots))}
	for _, b := range ballots {
		bb.Insert(b)
	}
	return bb
}

// Insert adds a ballot. The box owns it from now on.
func (bb *Box) Insert(b *Ballot) {
	if b == nil {
		return
	}
	bb.ballots = append(bb.ballots, b)
}

func (bb *Box) Len() int {
	return len(bb.ballots)
}

// Ballots returns the ballots held by the box
func (bb *Box) Ballots() []*Ballot {
	return bb.ballots
}

// Count builds a fresh tally with one vote for each ballot's current leader.
// Ballots with every entry eliminated are skipped.
func (bb *Box) Count() (*Tally, error) {
	tally := NewTally(MaxTallySize)
	for _, b := range bb.ballots {
		leader, ok := b.Leader()
		if !ok {
			continue
		}
		if err := tally.Inc(leader); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", leader, err)
		}
	}
	return tally, nil
}

// Eliminate removes name from every ballot in the box
func (bb *Box) Eliminate(name string) {
	for _, b := range bb.ballots {
		b.Eliminate(name)
	}
}
