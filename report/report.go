// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report renders a runoff outcome as a human-readable round log.
package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/quickly-runoff/irv"
)

// NoWinner is printed when the runoff ends without a majority
const NoWinner = "no winner"

// Write renders every round of outcome to w, followed by the result line:
//
//	1st round: 5 ballots counted
//	  A  2  40%
//	  ...
//	  eliminated B
//	winner: C
func Write(w io.Writer, outcome *irv.Outcome) error {
	bw := bufio.NewWriter(w)

	for _, round := range outcome.Rounds {
		fmt.Fprintf(bw, "%s round: %s %s counted\n",
			humanize.Ordinal(round.Number),
			humanize.Comma(int64(round.Total)),
			english.PluralWord(round.Total, "ballot", ""),
		)

		for _, line := range standings(round) {
			fmt.Fprintf(bw, "  %-*s  %s  %s%%\n",
				line.width, line.name,
				humanize.Comma(int64(line.count)),
				humanize.FtoaWithDigits(line.share, 1),
			)
		}

		switch {
		case round.Eliminated != "":
			fmt.Fprintf(bw, "  eliminated %s\n", round.Eliminated)
		case round.Total > 0:
			fmt.Fprintf(bw, "  %s has a majority\n", round.Leader)
		}
	}

	fmt.Fprintln(bw, Result(outcome))
	return bw.Flush()
}

// Result returns the final line of a report
func Result(outcome *irv.Outcome) string {
	if !outcome.Decided() {
		return NoWinner
	}
	return "winner: " + outcome.Winner
}

type standing struct {
	name  string
	count int
	share float64
	width int
}

// standings orders a round's counts from most to fewest votes, then by name
func standings(round irv.Round) []standing {
	width := 0
	out := make([]standing, 0, len(round.Counts))
	for name, count := range round.Counts {
		if len(name) > width {
			width = len(name)
		}
		var share float64
		if round.Total > 0 {
			share = 100 * float64(count) / float64(round.Total)
		}
		out = append(out, standing{name: name, count: count, share: share})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})

	for i := range out {
		out[i].width = width
	}
	return out
}
