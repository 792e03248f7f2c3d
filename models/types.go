package models

import "time"

// Request types

type CreateVoterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type UpdateVoterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type ElectionRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

type CandidateRequest struct {
	ElectionID int64   `json:"election_id,omitempty"`
	Name       string  `json:"name"`
	Party      *string `json:"party,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}

type CastVoteRequest struct {
	Email       string `json:"email"`
	ElectionID  int64  `json:"election_id"`
	CandidateID int64  `json:"candidate_id"`
}

// Response types

type CreateVoterResponse struct {
	Success bool   `json:"success"`
	VoterID int64  `json:"voter_id"`
	Note    string `json:"note,omitempty"` // "already_registered" on duplicate email
}

type CreateElectionResponse struct {
	Success    bool  `json:"success"`
	ElectionID int64 `json:"election_id"`
}

type CreateCandidateResponse struct {
	Success     bool  `json:"success"`
	CandidateID int64 `json:"candidate_id"`
}

type CastVoteResponse struct {
	Success bool  `json:"success"`
	VoteID  int64 `json:"vote_id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// Domain types

type Voter struct {
	ID        int64     `json:"voter_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Election struct {
	ID          int64      `json:"election_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OpenAt reports whether t falls inside the election's voting window.
// A nil bound is unbounded on that side; both bounds are inclusive.
func (e Election) OpenAt(t time.Time) bool {
	if e.StartsAt != nil && t.Before(*e.StartsAt) {
		return false
	}
	if e.EndsAt != nil && t.After(*e.EndsAt) {
		return false
	}
	return true
}

type Candidate struct {
	ID         int64     `json:"candidate_id"`
	ElectionID int64     `json:"election_id"`
	Name       string    `json:"name"`
	Party      *string   `json:"party"`
	Bio        *string   `json:"bio"`
	CreatedAt  time.Time `json:"created_at"`
}

// TallyRow is one line of an election's results.
type TallyRow struct {
	CandidateID int64   `json:"candidate_id"`
	Name        string  `json:"name"`
	Party       *string `json:"party"`
	Votes       int     `json:"votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
