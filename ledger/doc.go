// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger admits at most one vote per (voter, election) and tallies
the recorded votes.

# Casting

	l := ledger.New(st)
	voteID, err := l.CastVote(ctx, "alice@example.com", electionID, candidateID)

CastVote checks, in order: required fields, the voter's email (exact
match), the election, and the election's voting window. It then performs a
single insert. The storage layer's UNIQUE (voter_id, election_id)
constraint decides whether the vote is accepted; the ledger never checks
for an existing vote first.

# Errors

	ErrValidation      missing email, election_id or candidate_id (400)
	ErrNotRegistered   no voter with that email (400)
	ErrUnknownElection no election with that id (400)
	ErrElectionClosed  outside starts_at/ends_at (400)
	ErrAlreadyVoted    uniqueness constraint rejected the insert (409)
	ErrStorageFailure  anything else from the store, cause wrapped (500)

Use errors.Is to classify.

# Tally

	rows, err := l.Tally(ctx, electionID)

Rows cover every candidate of the election, including those with zero
votes, ordered by votes descending then name ascending.

# Known gaps

Identity is a bare email string. A candidate_id from a different election
is accepted by CastVote. The vote is stored under the given election but
counts in the tally of the election the candidate belongs to.
*/
package ledger
