// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballotio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-runoff/irv"
)

func leaders(t *testing.T, box *irv.Box) []string {
	t.Helper()
	var out []string
	for _, b := range box.Ballots() {
		leader, _ := b.Leader()
		out = append(out, leader)
	}
	return out
}

func TestReadBox(t *testing.T) {
	input := "a.l-ice\nbob\n%\nBob\r\ncarol\r\n%\n"
	box, err := ReadBox(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, box.Len())
	assert.Equal(t, []string{"ALICE", "BOB"}, leaders(t, box))

	entries := box.Ballots()[1].Entries()
	assert.Equal(t, []irv.Entry{
		{Name: "BOB", Active: true},
		{Name: "CAROL", Active: true},
	}, entries)
}

func TestReadBoxEmpty(t *testing.T) {
	box, err := ReadBox(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, box.Len())
}

func TestReadBoxTrailingBallot(t *testing.T) {
	box, err := ReadBox(strings.NewReader("A\n%\nB\nC"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, leaders(t, box))
	assert.Equal(t, 2, box.Ballots()[1].Len())
}

func TestReadBoxSkipsBlankNames(t *testing.T) {
	box, err := ReadBox(strings.NewReader("\n---\nA\n\n%\n"))
	require.NoError(t, err)
	require.Equal(t, 1, box.Len())
	assert.Equal(t, 1, box.Ballots()[0].Len())
}

func TestReaderNextEOF(t *testing.T) {
	r := NewReader(strings.NewReader("A\n%\n"))
	b, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadBoxOverflow(t *testing.T) {
	var sb strings.Builder
	for i := 0; i <= irv.MaxCandidates; i++ {
		sb.WriteString(strings.Repeat("x", i+1))
		sb.WriteString("\n")
	}
	sb.WriteString("%\n")

	_, err := ReadBox(strings.NewReader(sb.String()))
	require.ErrorIs(t, err, irv.ErrBallotFull)

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, irv.MaxCandidates+1, lineErr.Line)
}

func TestWriteBox(t *testing.T) {
	box, err := ReadBox(strings.NewReader("A\nB\n%\nB\n%\n"))
	require.NoError(t, err)
	box.Eliminate("B")

	var buf bytes.Buffer
	require.NoError(t, WriteBox(&buf, box))
	assert.Equal(t, " A\n[B]\n%\n[B]\n%\n", buf.String())
}
