// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the quickly-runoff command.

quickly-runoff decides single-winner elections by instant runoff: every
ballot counts for its highest-ranked candidate still in the race, and the
weakest candidate is eliminated each round until someone holds a strict
majority.

# Counting a Ballot File

	quickly-runoff count [--ballots] [--report] [FILE]

A ballot file lists one candidate per line, first choice first, and ends
each ballot with a line starting with %. Names are reduced to their upper-case
letters. The command prints the winner, or "no winner" when every ballot is
exhausted first. It exits with status 3 when a ballot ranks too many
candidates and 4 when a round has too many distinct candidates.

# Starting the Server

	quickly-runoff serve --admin-salt ... --slug-salt ...

Settings come from flags, the environment, or a .env file:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): connection string or SQLite file
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - SLUG_SALT (--slug-salt): Secret for share slug generation
  - PORT (-p): Server port (default: 3318)
  - BASE_URL (--base-url): Prefix for share links

# Architecture

  - irv: ballots, tallies and the runoff itself
  - ballotio: ballot file reading and writing
  - report: human-readable round report
  - handlers: HTTP request handlers (elections, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, JSON helpers
  - models: Request/response types
  - auth: Token generation and validation
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
