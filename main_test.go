package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-runoff/irv"
)

const fiveBallots = `A
B
C
%
A
B
C
%
B
C
A
%
C
A
B
%
C
B
A
%
`

func TestRunCount(t *testing.T) {
	var out bytes.Buffer
	err := runCount(strings.NewReader(fiveBallots), &out, false, false)
	require.NoError(t, err)
	assert.Equal(t, "C\n", out.String())
}

func TestRunCountNoWinner(t *testing.T) {
	var out bytes.Buffer
	err := runCount(strings.NewReader(""), &out, false, false)
	require.NoError(t, err)
	assert.Equal(t, "no winner\n", out.String())
}

func TestRunCountBallots(t *testing.T) {
	var out bytes.Buffer
	err := runCount(strings.NewReader("A\nB\n%\nB\nA\n%\nA\n%\n"), &out, true, false)
	require.NoError(t, err)

	// A wins outright, so nothing is eliminated
	assert.Equal(t, " A\n B\n%\n B\n A\n%\n A\n%\nA\n", out.String())
}

func TestRunCountBallotsShowEliminations(t *testing.T) {
	var out bytes.Buffer
	err := runCount(strings.NewReader(fiveBallots), &out, true, false)
	require.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, []string{" A", "[B]", " C", "%"}, lines[:4])
	assert.True(t, strings.HasSuffix(out.String(), "%\nC\n"))
}

func TestRunCountReport(t *testing.T) {
	var out bytes.Buffer
	err := runCount(strings.NewReader(fiveBallots), &out, false, true)
	require.NoError(t, err)

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "1st round: 5 ballots counted\n"))
	assert.Contains(t, got, "  eliminated B\n")
	assert.Contains(t, got, "2nd round: 5 ballots counted\n")
	assert.True(t, strings.HasSuffix(got, "winner: C\nC\n"))
}

func TestRunCountBallotFull(t *testing.T) {
	var in strings.Builder
	for i := 0; i <= irv.MaxCandidates; i++ {
		fmt.Fprintf(&in, "%c%c\n", 'A'+i/26, 'A'+i%26)
	}

	err := runCount(strings.NewReader(in.String()), &bytes.Buffer{}, false, false)
	require.ErrorIs(t, err, irv.ErrBallotFull)
	assert.Equal(t, exitBallotFull, exitCode(err))
}

func TestRunCountTallyFull(t *testing.T) {
	var in strings.Builder
	for i := 0; i <= irv.MaxTallySize; i++ {
		fmt.Fprintf(&in, "%c%c\n%%\n", 'A'+i/26, 'A'+i%26)
	}

	err := runCount(strings.NewReader(in.String()), &bytes.Buffer{}, false, false)
	require.ErrorIs(t, err, irv.ErrTallyFull)
	assert.Equal(t, exitTallyFull, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitFailure, exitCode(os.ErrNotExist))
	assert.Equal(t, exitBallotFull, exitCode(fmt.Errorf("line 3: %w", irv.ErrBallotFull)))
}

func TestCountCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballots.txt")
	require.NoError(t, os.WriteFile(path, []byte(fiveBallots), 0o600))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	err := app.Run([]string{"quickly-runoff", "count", "--report", path})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out.String(), "winner: C\nC\n"))
}
