// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const (
	DefaultPort        = 3318
	DefaultDatabaseURL = "quickly-runoff.db"
	DefaultBaseURL     = "http://localhost:3318"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string
	SlugSalt     string
	BaseURL      string
}

// Flags declares the server flags and their environment fallbacks
func Flags() []cli.Flag {
	return []cli.Flag{
		// Network config (can be CLI args or env)
		&cli.IntFlag{
			Name:    "p",
			Aliases: []string{"port"},
			Usage:   "Server port",
			EnvVars: []string{"PORT"},
			Value:   DefaultPort,
		},
		&cli.StringFlag{
			Name:    "d",
			Aliases: []string{"database-url"},
			Usage:   "Database URL",
			EnvVars: []string{"DATABASE_URL"},
		},
		&cli.StringFlag{
			Name:    "t",
			Aliases: []string{"database-type"},
			Usage:   "Database type (sqlite or postgres)",
			EnvVars: []string{"DATABASE_TYPE"},
			Value:   "sqlite",
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Public URL used to build share links",
			EnvVars: []string{"BASE_URL"},
			Value:   DefaultBaseURL,
		},

		// Secrets (prefer env variables, but allow CLI for dev)
		&cli.StringFlag{
			Name:    "admin-salt",
			Usage:   "Admin key salt (prefer env)",
			EnvVars: []string{"ADMIN_KEY_SALT"},
		},
		&cli.StringFlag{
			Name:    "slug-salt",
			Usage:   "Election slug salt (prefer env)",
			EnvVars: []string{"SLUG_SALT"},
		},
	}
}

// FromContext builds and validates a Config from parsed flags
func FromContext(c *cli.Context) (Config, error) {
	cfg := Config{
		Port:         c.Int("p"),
		DatabaseURL:  c.String("d"),
		DatabaseType: c.String("t"),
		AdminKeySalt: c.String("admin-salt"),
		SlugSalt:     c.String("slug-salt"),
		BaseURL:      c.String("base-url"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	switch cfg.DatabaseType {
	case "sqlite":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = DefaultDatabaseURL
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}
	if cfg.SlugSalt == "" {
		return Config{}, errors.New("SLUG_SALT required")
	}

	return cfg, nil
}

// ParseFlags parses server flags outside of a full CLI app
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	app := &cli.App{
		Name:      "quickly-runoff",
		Flags:     Flags(),
		Writer:    io.Discard,
		ErrWriter: io.Discard,
		Action: func(c *cli.Context) (err error) {
			cfg, err = FromContext(c)
			return err
		},
	}

	if err := app.Run(append([]string{app.Name}, args...)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnv loads environment files into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}
