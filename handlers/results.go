// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/online-voting/ledger"
	"github.com/danielhkuo/online-voting/middleware"
)

type ResultsHandler struct {
	ledger *ledger.Ledger
}

func NewResultsHandler(l *ledger.Ledger) *ResultsHandler {
	return &ResultsHandler{ledger: l}
}

// GetResults handles GET /elections/{id}/results (action results)
// Returns every candidate with a vote count, most votes first
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID := middleware.PathInt64(r, "id")
	if electionID <= 0 {
		electionID = middleware.QueryInt64(r, "election_id")
	}

	rows, err := h.ledger.Tally(r.Context(), electionID)
	if err != nil {
		status := statusForLedgerError(err)
		if status == http.StatusInternalServerError {
			slog.Error("failed to tally votes", "error", err, "election_id", electionID)
			middleware.ErrorResponse(w, status, "Failed to load results")
			return
		}
		middleware.ErrorResponse(w, status, "election_id required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rows)
}
