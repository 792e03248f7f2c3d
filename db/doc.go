// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Engines

Two engines are supported through database/sql:

  - sqlite: modernc.org/sqlite (pure Go, default)
  - postgres: github.com/lib/pq

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections get foreign_keys and busy_timeout pragmas and a single
open connection.

# Schema Creation

	if err := db.CreateSchema(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - voters: full_name, email (unique)
  - elections: title, description, optional starts_at/ends_at window
  - candidates: belongs to one election
  - votes: UNIQUE (voter_id, election_id)

# Relationships

	elections 1──* candidates   (ON DELETE CASCADE)
	voters    1──* votes        (restrict)
	elections 1──* votes        (restrict)
	candidates 1──* votes       (restrict)

Votes are never removed by a delete elsewhere; deleting a voter, election
or candidate that has votes fails with a foreign key violation.
*/
package db
