// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballotio reads ranked ballots from text.

# Format

Each line holds one candidate, highest preference first. A line starting
with % ends the ballot:

	alice
	bob
	%
	Bob
	carol
	%

Names are canonicalized with irv.CleanName, so "a.l-ice" and "ALICE" are the
same candidate. Lines with no letters are skipped. A final ballot without a
closing % is still read.

# Reading

	box, err := ballotio.ReadBox(os.Stdin)
	if errors.Is(err, irv.ErrBallotFull) {
		os.Exit(3)
	}

Errors report the line they occurred on through *LineError.
*/
package ballotio
