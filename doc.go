// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the online voting API server.

Voters register with an email address, administrators define elections and
their candidates, and each registered voter may cast exactly one vote per
election while its voting window is open. Results are available at any time.

# Starting the Server

The server reads its configuration from the environment (and an optional
.env file), then lets CLI flags override it:

	DATABASE_URL=voting.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_KEY (-admin-key): Guards election, candidate and voter management
  - LOG_LEVEL (-log-level): debug, info, warn, error (default: info)
  - LOG_FORMAT (-log-format): text or json (default: text on a terminal)

# Architecture

  - ledger: Vote casting and tallying rules
  - store: SQL persistence for voters, elections, candidates and votes
  - handlers: HTTP request handlers
  - router: REST routes and the ?action= dispatcher
  - middleware: CORS, logging, admin guard, request decoding
  - metrics: Prometheus counters
  - models: Request/response and domain types
  - auth: Admin key validation
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
