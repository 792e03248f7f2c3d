// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements persistence for voters, elections, candidates and
votes on top of database/sql.

	st := store.New(conn)
	l := ledger.New(st)

Store satisfies ledger.Store. InsertVote reports a (voter_id, election_id)
uniqueness violation as ledger.DuplicateKey rather than an error.

# Errors

Driver errors from lib/pq and modernc.org/sqlite are classified:

  - ErrDuplicate: unique violation (23505 / SQLITE_CONSTRAINT_UNIQUE)
  - ErrForeignKey: foreign key violation (23503 / SQLITE_CONSTRAINT_FOREIGNKEY)
  - ErrNotFound: update or delete matched no row

The original driver error stays in the chain for logging.
*/
package store
