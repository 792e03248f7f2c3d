// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/online-voting/middleware"
	"github.com/danielhkuo/online-voting/models"
	"github.com/danielhkuo/online-voting/store"
)

type ElectionHandler struct {
	store *store.Store
}

func NewElectionHandler(st *store.Store) *ElectionHandler {
	return &ElectionHandler{store: st}
}

// Create handles POST /elections (action create_election)
func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	data, err := middleware.ParseRequestData(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, msg := electionRequest(data)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title required")
		return
	}

	electionID, err := h.store.CreateElection(r.Context(), req)
	if err != nil {
		slog.Error("failed to create election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "election_id", electionID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		Success:    true,
		ElectionID: electionID,
	})
}

// List handles GET /elections (action list_elections)
func (h *ElectionHandler) List(w http.ResponseWriter, r *http.Request) {
	elections, err := h.store.ListElections(r.Context())
	if err != nil {
		slog.Error("failed to list elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

// Get handles GET /elections/{id}
func (h *ElectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := middleware.PathInt64(r, "id")
	if id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id required")
		return
	}

	election, ok, err := h.store.FindElection(r.Context(), id)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, election)
}

// Update handles PUT /elections/{id} (action update_election)
// All fields are replaced; omitted optional fields become null.
func (h *ElectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	data, err := middleware.ParseRequestData(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, msg := electionRequest(data)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	id := resourceID(r, data, "election_id")
	if id <= 0 || req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id and title required")
		return
	}

	if err := h.store.UpdateElection(r.Context(), id, req); err != nil {
		writeStoreError(w, err, "election", "update election")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Delete handles DELETE /elections/{id} (action delete_election)
// Candidates go with the election; an election with votes cannot be deleted.
func (h *ElectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	data, err := middleware.ParseRequestData(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := resourceID(r, data, "election_id")
	if id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id required")
		return
	}

	if err := h.store.DeleteElection(r.Context(), id); err != nil {
		writeStoreError(w, err, "election", "delete election")
		return
	}

	slog.Info("election deleted", "election_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// electionRequest binds and checks the election fields. A non-empty msg
// describes the first problem found.
func electionRequest(data middleware.RequestData) (models.ElectionRequest, string) {
	req := models.ElectionRequest{
		Title:       data.String("title"),
		Description: data.Optional("description"),
	}

	var err error
	if req.StartsAt, err = data.Time("starts_at"); err != nil {
		return req, err.Error()
	}
	if req.EndsAt, err = data.Time("ends_at"); err != nil {
		return req, err.Error()
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return req, "ends_at must not be before starts_at"
	}

	return req, ""
}
