// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/online-voting/models"
)

var (
	ErrValidation      = errors.New("invalid request")
	ErrNotRegistered   = errors.New("voter not registered")
	ErrUnknownElection = errors.New("invalid election")
	ErrElectionClosed  = errors.New("election not open")
	ErrAlreadyVoted    = errors.New("voter has already voted in this election")
	ErrStorageFailure  = errors.New("storage failure")
)

// InsertOutcome is the tagged result of Store.InsertVote: either the new
// vote ID, or Duplicate when the (voter, election) pair already has a vote.
type InsertOutcome struct {
	VoteID    int64
	Duplicate bool
}

// Inserted builds the outcome for a committed vote.
func Inserted(id int64) InsertOutcome { return InsertOutcome{VoteID: id} }

// DuplicateKey is the outcome for an insert rejected by the
// (voter_id, election_id) uniqueness constraint.
var DuplicateKey = InsertOutcome{Duplicate: true}

// Store is the persistence the ledger needs.
type Store interface {
	FindVoterByEmail(ctx context.Context, email string) (models.Voter, bool, error)
	FindElection(ctx context.Context, id int64) (models.Election, bool, error)
	// InsertVote must be a single statement; a uniqueness violation on
	// (voter_id, election_id) is reported as DuplicateKey, not as an error.
	InsertVote(ctx context.Context, voterID, electionID, candidateID int64) (InsertOutcome, error)
	AggregateVotesByCandidate(ctx context.Context, electionID int64) ([]models.TallyRow, error)
}

type Ledger struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// WithClock replaces the time source used for the election window check.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// CastVote records one vote for the voter identified by email.
//
// The lookups before the insert only produce friendlier errors. The
// uniqueness constraint on (voter_id, election_id) is what keeps two
// concurrent casts for the same pair from both succeeding.
func (l *Ledger) CastVote(ctx context.Context, email string, electionID, candidateID int64) (int64, error) {
	if email == "" || electionID <= 0 || candidateID <= 0 {
		return 0, fmt.Errorf("%w: email, election_id and candidate_id required", ErrValidation)
	}

	// Exact, case-sensitive match on the stored email.
	voter, ok, err := l.store.FindVoterByEmail(ctx, email)
	if err != nil {
		return 0, storageFailure(err)
	}
	if !ok {
		return 0, ErrNotRegistered
	}

	election, ok, err := l.store.FindElection(ctx, electionID)
	if err != nil {
		return 0, storageFailure(err)
	}
	if !ok {
		return 0, ErrUnknownElection
	}

	now := l.now()
	if !election.OpenAt(now) {
		return 0, closedError(election, now)
	}

	// candidateID is not checked against electionID.
	outcome, err := l.store.InsertVote(ctx, voter.ID, electionID, candidateID)
	if err != nil {
		return 0, storageFailure(err)
	}
	if outcome.Duplicate {
		return 0, ErrAlreadyVoted
	}

	return outcome.VoteID, nil
}

// Tally returns every candidate of the election with its vote count,
// most votes first, ties by name. An unknown election yields an empty list.
func (l *Ledger) Tally(ctx context.Context, electionID int64) ([]models.TallyRow, error) {
	if electionID <= 0 {
		return nil, fmt.Errorf("%w: election_id required", ErrValidation)
	}

	rows, err := l.store.AggregateVotesByCandidate(ctx, electionID)
	if err != nil {
		return nil, storageFailure(err)
	}
	if rows == nil {
		rows = []models.TallyRow{}
	}
	return rows, nil
}

func storageFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}

func closedError(e models.Election, now time.Time) error {
	if e.StartsAt != nil && now.Before(*e.StartsAt) {
		return fmt.Errorf("%w: voting opens %s", ErrElectionClosed,
			humanize.RelTime(*e.StartsAt, now, "ago", "from now"))
	}
	return fmt.Errorf("%w: voting ended %s", ErrElectionClosed,
		humanize.RelTime(*e.EndsAt, now, "ago", "from now"))
}
