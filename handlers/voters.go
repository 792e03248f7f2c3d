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

type VoterHandler struct {
	store *store.Store
}

func NewVoterHandler(st *store.Store) *VoterHandler {
	return &VoterHandler{store: st}
}

// Register handles POST /voters (actions create_voter, register_voter)
// Registering an email twice returns the existing voter with a note.
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	data, err := middleware.ParseRequestData(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := models.CreateVoterRequest{
		FullName: data.String("full_name"),
		Email:    data.String("email"),
	}
	if req.FullName == "" || req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "full_name and email required")
		return
	}

	voterID, err := h.store.CreateVoter(r.Context(), req.FullName, req.Email)
	if errors.Is(err, store.ErrDuplicate) {
		existing, ok, ferr := h.store.FindVoterByEmail(r.Context(), req.Email)
		if ferr != nil || !ok {
			slog.Error("failed to load existing voter", "error", ferr, "found", ok)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.CreateVoterResponse{
			Success: true,
			VoterID: existing.ID,
			Note:    "already_registered",
		})
		return
	}
	if err != nil {
		slog.Error("failed to register voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	slog.Info("voter registered", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateVoterResponse{
		Success: true,
		VoterID: voterID,
	})
}

// List handles GET /voters (action list_voters)
func (h *VoterHandler) List(w http.ResponseWriter, r *http.Request) {
	voters, err := h.store.ListVoters(r.Context())
	if err != nil {
		slog.Error("failed to list voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// Update handles PUT /voters/{id} (action update_voter)
func (h *VoterHandler) Update(w http.ResponseWriter, r *http.Request) {
	data, err := middleware.ParseRequestData(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := resourceID(r, data, "voter_id")
	req := models.UpdateVoterRequest{
		FullName: data.String("full_name"),
		Email:    data.String("email"),
	}
	if id <= 0 || req.FullName == "" || req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id, full_name and email required")
		return
	}

	err = h.store.UpdateVoter(r.Context(), id, req.FullName, req.Email)
	if err != nil {
		writeStoreError(w, err, "voter", "update voter")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Delete handles DELETE /voters/{id} (action delete_voter)
func (h *VoterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	data, err := middleware.ParseRequestData(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := resourceID(r, data, "voter_id")
	if id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id required")
		return
	}

	if err := h.store.DeleteVoter(r.Context(), id); err != nil {
		writeStoreError(w, err, "voter", "delete voter")
		return
	}

	slog.Info("voter deleted", "voter_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// resourceID takes the {id} path value, falling back to a body field for
// requests that arrive through the action dispatcher.
func resourceID(r *http.Request, data middleware.RequestData, field string) int64 {
	if id := middleware.PathInt64(r, "id"); id > 0 {
		return id
	}
	return data.Int64(field)
}

// writeStoreError maps store sentinels onto status codes
func writeStoreError(w http.ResponseWriter, err error, resource, op string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, store.ErrDuplicate):
		middleware.ErrorResponse(w, http.StatusConflict, resource+" already exists")
	case errors.Is(err, store.ErrForeignKey):
		middleware.ErrorResponse(w, http.StatusConflict, resource+" has recorded votes")
	default:
		slog.Error("failed to "+op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+op)
	}
}
