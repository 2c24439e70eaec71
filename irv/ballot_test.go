// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBallot(t *testing.T, names ...string) *Ballot {
	t.Helper()
	b := NewBallot()
	for _, name := range names {
		require.NoError(t, b.Insert(name))
	}
	return b
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.l-ice", "ALICE"},
		{"ALICE", "ALICE"},
		{"  Bob\r\n", "BOB"},
		{"o'Brien 3rd", "OBRIENRD"},
		{"1234", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := CleanName(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, CleanName(got), "cleaning must be idempotent")
		})
	}
}

func TestBallotLeaderIsFirstInsert(t *testing.T) {
	b := newTestBallot(t, "carol", "alice", "bob")
	leader, ok := b.Leader()
	require.True(t, ok)
	assert.Equal(t, "CAROL", leader)
	assert.Equal(t, 3, b.Len())
}

func TestBallotEmptyHasNoLeader(t *testing.T) {
	_, ok := NewBallot().Leader()
	assert.False(t, ok)
}

func TestBallotEliminateAll(t *testing.T) {
	b := newTestBallot(t, "A", "B", "C")
	for _, name := range []string{"B", "A", "C"} {
		b.Eliminate(name)
	}
	leader, ok := b.Leader()
	assert.False(t, ok)
	assert.Empty(t, leader)
}

func TestBallotEliminateMovesLeaderInOrder(t *testing.T) {
	b := newTestBallot(t, "A", "B", "C")

	b.Eliminate("B")
	leader, _ := b.Leader()
	assert.Equal(t, "A", leader)

	b.Eliminate("A")
	leader, _ = b.Leader()
	assert.Equal(t, "C", leader)
}

func TestBallotEliminateUnknownIsNoop(t *testing.T) {
	b := newTestBallot(t, "A", "B")
	before := b.Entries()

	b.Eliminate("Z")

	assert.Equal(t, before, b.Entries())
	leader, _ := b.Leader()
	assert.Equal(t, "A", leader)
}

func TestBallotEliminateIdempotent(t *testing.T) {
	once := newTestBallot(t, "A", "B", "C")
	twice := newTestBallot(t, "A", "B", "C")

	once.Eliminate("A")
	twice.Eliminate("A")
	twice.Eliminate("A")

	assert.Equal(t, once.Entries(), twice.Entries())
}

func TestBallotEliminateAllMatches(t *testing.T) {
	b := newTestBallot(t, "A", "b", "B")
	b.Eliminate("B")
	assert.Equal(t, []Entry{
		{Name: "A", Active: true},
		{Name: "B", Active: false},
		{Name: "B", Active: false},
	}, b.Entries())
}

func TestBallotInsertFull(t *testing.T) {
	b := NewBallot()
	for i := 0; i < MaxCandidates; i++ {
		require.NoError(t, b.Insert(letterName(i)))
	}
	require.ErrorIs(t, b.Insert("overflow"), ErrBallotFull)
	assert.Equal(t, MaxCandidates, b.Len())
}

func TestBallotInsertEmptyName(t *testing.T) {
	b := NewBallot()
	require.ErrorIs(t, b.Insert("42"), ErrEmptyName)
	assert.Zero(t, b.Len())
}

func TestBallotRender(t *testing.T) {
	b := newTestBallot(t, "alice", "bob", "carol")
	b.Eliminate("BOB")

	var buf bytes.Buffer
	require.NoError(t, b.Render(&buf))
	assert.Equal(t, " ALICE\n[BOB]\n CAROL\n", buf.String())
}

func TestBallotEntriesIsCopy(t *testing.T) {
	b := newTestBallot(t, "A")
	entries := b.Entries()
	entries[0].Active = false

	_, ok := b.Leader()
	assert.True(t, ok)
}

// letterName maps i to a distinct letters-only name: 0 → A, 25 → Z, 26 → BA.
func letterName(i int) string {
	if i == 0 {
		return "A"
	}
	var out []byte
	for ; i > 0; i /= 26 {
		out = append([]byte{byte('A' + i%26)}, out...)
	}
	return string(out)
}
