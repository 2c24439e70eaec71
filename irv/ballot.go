// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import (
	"errors"
	"fmt"
	"io"
)

// MaxCandidates is the most entries a single ballot may hold.
const MaxCandidates = 32

var (
	ErrBallotFull = errors.New("ballot is full")
	ErrEmptyName  = errors.New("candidate name is empty")
)

// Entry is one ranked candidate on a ballot
type Entry struct {
	Name   string
	Active bool
}

// Ballot is one voter's ranking, highest preference first.
// Entries are only ever appended and deactivated, never moved or removed.
type Ballot struct {
	entries []Entry
}

func NewBallot() *Ballot {
	return &Ballot{}
}

// Insert canonicalizes name and appends it as the ballot's next preference.
func (b *Ballot) Insert(name string) error {
	if len(b.entries) == MaxCandidates {
		return ErrBallotFull
	}

	name = CleanName(name)
	if name == "" {
		return ErrEmptyName
	}

	b.entries = append(b.entries, Entry{Name: name, Active: true})
	return nil
}

// Leader returns the voter's top remaining choice. The second result is false
// once every entry has been eliminated.
func (b *Ballot) Leader() (string, bool) {
	// Position order is the preference order, so the first active entry wins.
	for _, e := range b.entries {
		if e.Active {
			return e.Name, true
		}
	}
	return "", false
}

// Eliminate deactivates every entry for name. Unknown names are ignored.
func (b *Ballot) Eliminate(name string) {
	for i := range b.entries {
		if b.entries[i].Name == name {
			b.entries[i].Active = false
		}
	}
}

// Len returns the number of ranked candidates
func (b *Ballot) Len() int {
	return len(b.entries)
}

// Entries returns a copy of the ballot's entries in preference order
func (b *Ballot) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Render writes one line per entry. Active entries are prefixed with a
// space, eliminated entries are wrapped in brackets.
func (b *Ballot) Render(w io.Writer) error {
	for _, e := range b.entries {
		var err error
		if e.Active {
			_, err = fmt.Fprintf(w, " %s\n", e.Name)
		} else {
			_, err = fmt.Fprintf(w, "[%s]\n", e.Name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
