// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming bodies:

  - CreateVoterRequest / UpdateVoterRequest: full_name, email
  - ElectionRequest: title, description, starts_at, ends_at
  - CandidateRequest: election_id, name, party, bio
  - CastVoteRequest: email, election_id, candidate_id

# Response Types

  - CreateVoterResponse: success, voter_id, note
  - CreateElectionResponse: success, election_id
  - CreateCandidateResponse: success, candidate_id
  - CastVoteResponse: success, vote_id
  - ErrorResponse: error, message

# Domain Types

  - Voter: registered voter, identified by email
  - Election: title plus an optional voting window
  - Candidate: belongs to exactly one election
  - Vote: one row per (voter, election)
  - TallyRow: per-candidate vote count

Optional columns are pointers so they encode as JSON null.

# Voting Window

Election.OpenAt checks a time against starts_at/ends_at:

	if !election.OpenAt(time.Now()) {
		// closed
	}

A nil bound means the window is open on that side.
*/
package models
