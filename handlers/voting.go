// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/online-voting/ledger"
	"github.com/danielhkuo/online-voting/metrics"
	"github.com/danielhkuo/online-voting/middleware"
	"github.com/danielhkuo/online-voting/models"
)

type VotingHandler struct {
	ledger  *ledger.Ledger
	metrics *metrics.Metrics
}

func NewVotingHandler(l *ledger.Ledger, m *metrics.Metrics) *VotingHandler {
	return &VotingHandler{ledger: l, metrics: m}
}

// CastVote handles POST /votes (action cast_vote)
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	data, err := middleware.ParseRequestData(w, r)
	if err != nil {
		h.metrics.ObserveVote(metrics.OutcomeRejected)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := models.CastVoteRequest{
		Email:       data.String("email"),
		ElectionID:  data.Int64("election_id"),
		CandidateID: data.Int64("candidate_id"),
	}

	voteID, err := h.ledger.CastVote(r.Context(), req.Email, req.ElectionID, req.CandidateID)
	if err != nil {
		status := statusForLedgerError(err)
		switch status {
		case http.StatusConflict:
			h.metrics.ObserveVote(metrics.OutcomeAlreadyVoted)
			middleware.ErrorResponse(w, status, err.Error())
		case http.StatusBadRequest:
			h.metrics.ObserveVote(metrics.OutcomeRejected)
			middleware.ErrorResponse(w, status, err.Error())
		default:
			h.metrics.ObserveVote(metrics.OutcomeError)
			slog.Error("failed to cast vote", "error", err, "election_id", req.ElectionID)
			middleware.ErrorResponse(w, status, "Failed to cast vote")
		}
		return
	}

	h.metrics.ObserveVote(metrics.OutcomeAccepted)
	slog.Info("vote cast", "vote_id", voteID, "election_id", req.ElectionID)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		Success: true,
		VoteID:  voteID,
	})
}

// statusForLedgerError maps the ledger taxonomy onto HTTP status codes
func statusForLedgerError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrValidation),
		errors.Is(err, ledger.ErrNotRegistered),
		errors.Is(err, ledger.ErrUnknownElection),
		errors.Is(err, ledger.ErrElectionClosed):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrAlreadyVoted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
