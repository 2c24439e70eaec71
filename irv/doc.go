// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package irv implements Instant Runoff Voting over ranked ballots.

# Ballots

A Ballot is one voter's ranking, highest preference first. Names are
canonicalized on insert (letters only, upper case):

	b := irv.NewBallot()
	b.Insert("alice")  // ALICE
	b.Insert("Bob")    // BOB

Leader returns the first entry that has not been eliminated. Eliminate
never reorders a ballot, it only deactivates entries.

# Counting

A Box holds every ballot of an election. Each round Count builds a fresh
Tally from the current leaders:

	box := irv.NewBox(ballots...)
	tally, err := box.Count()

# Runoff

Runoff repeats count → majority check → eliminate until a candidate holds
strictly more than half of the counted ballots, or until no ballot has a
leader left:

	outcome, err := irv.Runoff(box)
	if outcome.Decided() {
		fmt.Println(outcome.Winner)
	}

# Ties

Tally.Max breaks ties toward the alphabetically first name and Tally.Min
toward the alphabetically last, so the earlier name survives a tie.

# Errors

ErrBallotFull and ErrTallyFull report capacity overflows. Callers that must
match the historical batch behavior exit with status 3 and 4 respectively.
*/
package irv
