// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import (
	"errors"
	"sort"
)

// MaxTallySize is the most distinct candidates a single round can count.
const MaxTallySize = 128

var ErrTallyFull = errors.New("vote tally is full")

// Tally maps candidate names to their vote count for one round
type Tally struct {
	capacity int
	counts   map[string]*int
}

// NewTally creates an empty tally that accepts at most capacity names.
// A capacity <= 0 means MaxTallySize.
func NewTally(capacity int) *Tally {
	if capacity <= 0 {
		capacity = MaxTallySize
	}
	return &Tally{
		capacity: capacity,
		counts:   make(map[string]*int),
	}
}

// Update returns the counter for name, adding it at zero if it is new.
func (t *Tally) Update(name string) (*int, error) {
	if c, ok := t.counts[name]; ok {
		return c, nil
	}
	if len(t.counts) >= t.capacity {
		return nil, ErrTallyFull
	}
	c := new(int)
	t.counts[name] = c
	return c, nil
}

// Inc adds one vote for name
func (t *Tally) Inc(name string) error {
	c, err := t.Update(name)
	if err != nil {
		return err
	}
	*c++
	return nil
}

// Lookup returns the count for name, 0 if it has none.
func (t *Tally) Lookup(name string) int {
	if c, ok := t.counts[name]; ok {
		return *c
	}
	return 0
}

// Max returns the name with the highest count, preferring the alphabetically
// first name on a tie. It returns "" for an empty tally.
func (t *Tally) Max() string {
	best, bestCount := "", -1
	for _, name := range t.Names() {
		if c := *t.counts[name]; c > bestCount {
			best, bestCount = name, c
		}
	}
	return best
}

// Min returns the name with the lowest count, preferring the alphabetically
// last name on a tie. It returns "" for an empty tally.
func (t *Tally) Min() string {
	worst, worstCount := "", 0
	for i, name := range t.Names() {
		if c := *t.counts[name]; i == 0 || c <= worstCount {
			worst, worstCount = name, c
		}
	}
	return worst
}

// Total returns the sum of all counts
func (t *Tally) Total() int {
	total := 0
	for _, c := range t.counts {
		total += *c
	}
	return total
}

// Len returns the number of distinct names
func (t *Tally) Len() int {
	return len(t.counts)
}

// Names returns every counted name in sorted order
func (t *Tally) Names() []string {
	names := make([]string, 0, len(t.counts))
	for name := range t.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Counts returns a copy of the name → count mapping
func (t *Tally) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for name, c := range t.counts {
		out[name] = *c
	}
	return out
}
