// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

Flags returns the server flags for a urfave/cli command, and FromContext
turns the parsed values into a validated Config:

	cmd := &cli.Command{
		Name:  "serve",
		Flags: cliparse.Flags(),
		Action: func(c *cli.Context) error {
			cfg, err := cliparse.FromContext(c)
			// ...
		},
	}

ParseFlags does the same for a plain argument slice:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (default for sqlite: quickly-runoff.db)
  - DatabaseType: sqlite (default) or postgres
  - AdminKeySalt: Secret for admin key HMAC (required)
  - SlugSalt: Secret for share slug generation (required)
  - BaseURL: Prefix for share links

# CLI Flags

	-p, --port           Server port
	-d, --database-url   Database URL
	-t, --database-type  sqlite or postgres
	--base-url           Share link prefix
	--admin-salt         Admin key salt
	--slug-salt          Election slug salt

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	BASE_URL       → --base-url
	ADMIN_KEY_SALT → --admin-salt
	SLUG_SALT → --slug-salt

CLI flags take precedence over environment variables. LoadEnv reads a .env
file first; variables already present in the environment are kept.

# Validation

FromContext returns an error if:

  - DATABASE_URL is missing for postgres
  - the database type is unknown
  - ADMIN_KEY_SALT or SLUG_SALT is missing
*/
package cliparse
