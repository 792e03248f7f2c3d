// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/online-voting/middleware"
	"github.com/danielhkuo/online-voting/models"
	"github.com/danielhkuo/online-voting/store"
)

type CandidateHandler struct {
	store *store.Store
}

func NewCandidateHandler(st *store.Store) *CandidateHandler {
	return &CandidateHandler{store: st}
}

// Create handles POST /elections/{id}/candidates (action create_candidate)
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	data, err := middleware.ParseRequestData(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := models.CandidateRequest{
		ElectionID: resourceID(r, data, "election_id"),
		Name:       data.String("name"),
		Party:      data.Optional("party"),
		Bio:        data.Optional("bio"),
	}
	if req.ElectionID <= 0 || req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id and name required")
		return
	}

	candidateID, err := h.store.CreateCandidate(r.Context(), req)
	if errors.Is(err, store.ErrForeignKey) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid election")
		return
	}
	if err != nil {
		slog.Error("failed to create candidate", "error", err, "election_id", req.ElectionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate created", "candidate_id", candidateID, "election_id", req.ElectionID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCandidateResponse{
		Success:     true,
		CandidateID: candidateID,
	})
}

// List handles GET /candidates and GET /elections/{id}/candidates
// (action list_candidates). Without an election filter all candidates
// are returned.
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	electionID := middleware.PathInt64(r, "id")
	if electionID <= 0 {
		electionID = middleware.QueryInt64(r, "election_id")
	}

	candidates, err := h.store.ListCandidates(r.Context(), electionID)
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Update handles PUT /candidates/{id} (action update_candidate)
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	data, err := middleware.ParseRequestData(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := resourceID(r, data, "candidate_id")
	req := models.CandidateRequest{
		Name:  data.String("name"),
		Party: data.Optional("party"),
		Bio:   data.Optional("bio"),
	}
	if id <= 0 || req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id and name required")
		return
	}

	if err := h.store.UpdateCandidate(r.Context(), id, req); err != nil {
		writeStoreError(w, err, "candidate", "update candidate")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Delete handles DELETE /candidates/{id} (action delete_candidate)
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	data, err := middleware.ParseRequestData(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := resourceID(r, data, "candidate_id")
	if id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id required")
		return
	}

	if err := h.store.DeleteCandidate(r.Context(), id); err != nil {
		writeStoreError(w, err, "candidate", "delete candidate")
		return
	}

	slog.Info("candidate deleted", "candidate_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
