// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the online voting API.

# Handler Types

  - VoterHandler: Voter registration and management
  - ElectionHandler: Election CRUD
  - CandidateHandler: Candidate CRUD
  - VotingHandler: Vote casting through the ledger
  - ResultsHandler: Per-election tallies

Management handlers take a *store.Store; voting and results go through a
*ledger.Ledger so the casting rules live in one place.

# Request Bodies

Every handler accepts JSON, multipart/form-data or urlencoded bodies via
middleware.ParseRequestData. Resource IDs come from the {id} path value
when present, otherwise from the body.

# Status Codes

	400  validation, unregistered voter, unknown or closed election
	401  missing or wrong X-Admin-Key
	404  resource not found
	409  voter already voted; delete blocked by recorded votes
	500  storage failure
*/
package handlers
