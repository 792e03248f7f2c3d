// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/online-voting/ledger"
	"github.com/danielhkuo/online-voting/models"
)

// Store is the database/sql implementation of ledger.Store plus the voter,
// election and candidate management queries. Queries use $N placeholders,
// which both lib/pq and modernc.org/sqlite accept.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ ledger.Store = (*Store)(nil)

func New(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Voters

// CreateVoter inserts a voter. A taken email returns ErrDuplicate.
func (s *Store) CreateVoter(ctx context.Context, fullName, email string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO voters (full_name, email, created_at)
		VALUES ($1, $2, $3)
		RETURNING voter_id
	`, fullName, email, s.now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert voter: %w", classify(err))
	}
	return id, nil
}

func (s *Store) FindVoterByEmail(ctx context.Context, email string) (models.Voter, bool, error) {
	var v models.Voter
	err := s.db.QueryRowContext(ctx, `
		SELECT voter_id, full_name, email, created_at
		FROM voters
		WHERE email = $1
	`, email).Scan(&v.ID, &v.FullName, &v.Email, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Voter{}, false, nil
	}
	if err != nil {
		return models.Voter{}, false, fmt.Errorf("failed to query voter: %w", err)
	}
	return v, true, nil
}

func (s *Store) ListVoters(ctx context.Context) ([]models.Voter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT voter_id, full_name, email, created_at
		FROM voters
		ORDER BY created_at DESC, voter_id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		if err := rows.Scan(&v.ID, &v.FullName, &v.Email, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate voters: %w", err)
	}
	return voters, nil
}

func (s *Store) UpdateVoter(ctx context.Context, id int64, fullName, email string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE voters SET full_name = $1, email = $2 WHERE voter_id = $3
	`, fullName, email, id)
	return affectedOne(res, err, "update voter")
}

// DeleteVoter removes a voter. A voter with recorded votes cannot be
// removed and returns ErrForeignKey.
func (s *Store) DeleteVoter(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM voters WHERE voter_id = $1`, id)
	return affectedOne(res, err, "delete voter")
}

// Elections

func (s *Store) CreateElection(ctx context.Context, req models.ElectionRequest) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO elections (title, description, starts_at, ends_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING election_id
	`, req.Title, req.Description, utcPtr(req.StartsAt), utcPtr(req.EndsAt), s.now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert election: %w", classify(err))
	}
	return id, nil
}

func (s *Store) FindElection(ctx context.Context, id int64) (models.Election, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT election_id, title, description, starts_at, ends_at, created_at
		FROM elections
		WHERE election_id = $1
	`, id)
	e, err := scanElection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Election{}, false, nil
	}
	if err != nil {
		return models.Election{}, false, fmt.Errorf("failed to query election: %w", err)
	}
	return e, true, nil
}

func (s *Store) ListElections(ctx context.Context) ([]models.Election, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT election_id, title, description, starts_at, ends_at, created_at
		FROM elections
		ORDER BY created_at DESC, election_id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate elections: %w", err)
	}
	return elections, nil
}

func (s *Store) UpdateElection(ctx context.Context, id int64, req models.ElectionRequest) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE elections
		SET title = $1, description = $2, starts_at = $3, ends_at = $4
		WHERE election_id = $5
	`, req.Title, req.Description, utcPtr(req.StartsAt), utcPtr(req.EndsAt), id)
	return affectedOne(res, err, "update election")
}

// DeleteElection removes an election and its candidates. Elections with
// recorded votes return ErrForeignKey.
func (s *Store) DeleteElection(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM elections WHERE election_id = $1`, id)
	return affectedOne(res, err, "delete election")
}

// Candidates

// CreateCandidate inserts a candidate. An unknown election returns ErrForeignKey.
func (s *Store) CreateCandidate(ctx context.Context, req models.CandidateRequest) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO candidates (election_id, name, party, bio, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING candidate_id
	`, req.ElectionID, req.Name, req.Party, req.Bio, s.now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert candidate: %w", classify(err))
	}
	return id, nil
}

// ListCandidates returns candidates newest first, limited to one election
// when electionID is positive.
func (s *Store) ListCandidates(ctx context.Context, electionID int64) ([]models.Candidate, error) {
	var rows *sql.Rows
	var err error
	if electionID > 0 {
		rows, err = s.db.QueryContext(ctx, `
			SELECT candidate_id, election_id, name, party, bio, created_at
			FROM candidates
			WHERE election_id = $1
			ORDER BY created_at DESC, candidate_id DESC
		`, electionID)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT candidate_id, election_id, name, party, bio, created_at
			FROM candidates
			ORDER BY created_at DESC, candidate_id DESC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var party, bio sql.NullString
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &party, &bio, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.Party = stringPtr(party)
		c.Bio = stringPtr(bio)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

func (s *Store) UpdateCandidate(ctx context.Context, id int64, req models.CandidateRequest) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE candidates SET name = $1, party = $2, bio = $3 WHERE candidate_id = $4
	`, req.Name, req.Party, req.Bio, id)
	return affectedOne(res, err, "update candidate")
}

// DeleteCandidate removes a candidate. Candidates with votes return ErrForeignKey.
func (s *Store) DeleteCandidate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM candidates WHERE candidate_id = $1`, id)
	return affectedOne(res, err, "delete candidate")
}

// Votes

// InsertVote appends a vote in one statement. The UNIQUE (voter_id,
// election_id) constraint is checked by the engine at insert time, so of two
// concurrent inserts for the same pair exactly one gets a vote ID and the
// other gets DuplicateKey.
func (s *Store) InsertVote(ctx context.Context, voterID, electionID, candidateID int64) (ledger.InsertOutcome, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO votes (voter_id, election_id, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4)
		RETURNING vote_id
	`, voterID, electionID, candidateID, s.now()).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			return ledger.DuplicateKey, nil
		}
		return ledger.InsertOutcome{}, fmt.Errorf("failed to insert vote: %w", classify(err))
	}
	return ledger.Inserted(id), nil
}

// AggregateVotesByCandidate counts votes per candidate of the election.
// Candidates without votes are kept by the LEFT JOIN with a count of 0.
// Votes join on candidate_id alone, so a vote recorded under another
// election still counts for the candidate it names. Name ties compare
// bytewise on both engines (SQLite BINARY, Postgres COLLATE "C" column).
func (s *Store) AggregateVotesByCandidate(ctx context.Context, electionID int64) ([]models.TallyRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.candidate_id, c.name, c.party, COUNT(v.vote_id) AS votes
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.candidate_id
		WHERE c.election_id = $1
		GROUP BY c.candidate_id, c.name, c.party
		ORDER BY votes DESC, c.name ASC, c.candidate_id ASC
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate votes: %w", err)
	}
	defer rows.Close()

	tally := []models.TallyRow{}
	for rows.Next() {
		var r models.TallyRow
		var party sql.NullString
		if err := rows.Scan(&r.CandidateID, &r.Name, &party, &r.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		r.Party = stringPtr(party)
		tally = append(tally, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tally: %w", err)
	}
	return tally, nil
}

// CountVotes returns the number of committed votes for an election.
func (s *Store) CountVotes(ctx context.Context, electionID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM votes WHERE election_id = $1
	`, electionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

// Helpers

type scanner interface {
	Scan(dest ...any) error
}

func scanElection(row scanner) (models.Election, error) {
	var e models.Election
	var desc sql.NullString
	var starts, ends sql.NullTime
	if err := row.Scan(&e.ID, &e.Title, &desc, &starts, &ends, &e.CreatedAt); err != nil {
		return models.Election{}, err
	}
	e.Description = stringPtr(desc)
	e.StartsAt = timePtr(starts)
	e.EndsAt = timePtr(ends)
	return e, nil
}

func affectedOne(res sql.Result, err error, op string) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
