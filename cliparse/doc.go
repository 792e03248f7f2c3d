// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file/URI or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKey: Guards election/candidate management when set
  - LogLevel: debug, info, warn, error (default: info)
  - LogFormat: text or json (default: text on a terminal, json otherwise)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-admin-key    Admin key
	-log-level    Log level
	-log-format   Log format

# Environment Variables

The environment is read with envconfig; main loads a .env file first if
one exists:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_KEY     → -admin-key
	LOG_LEVEL     → -log-level
	LOG_FORMAT    → -log-format

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - PORT is not a valid port number
  - DATABASE_TYPE is not sqlite or postgres
  - LOG_FORMAT is not text or json
*/
package cliparse
