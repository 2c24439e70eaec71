// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open picks the driver from the configured type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - sqlite: modernc.org/sqlite (pure Go), foreign keys on, 5s busy timeout
  - postgres: github.com/lib/pq

Queries throughout the service use $N placeholders, which both drivers
accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - election: Election metadata and lifecycle state
  - candidate: Candidates per election, with canonical name
  - username_claim: Maps usernames to voter tokens
  - ballot: One ballot per voter per election
  - ranking: A ballot's candidates in preference order
  - result_snapshot: Immutable runoff results

# Relationships

	election 1──* candidate
	election 1──* username_claim
	election 1──* ballot
	ballot 1──* ranking *──1 candidate
	election 1──* result_snapshot

All foreign keys use ON DELETE CASCADE.

# Errors

IsUniqueViolation recognizes duplicate-key failures from either driver.
*/
package db
