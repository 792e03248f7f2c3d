// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/online-voting/cliparse"
	"github.com/danielhkuo/online-voting/handlers"
	"github.com/danielhkuo/online-voting/ledger"
	"github.com/danielhkuo/online-voting/metrics"
	"github.com/danielhkuo/online-voting/middleware"
	"github.com/danielhkuo/online-voting/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	st := store.New(db)
	l := ledger.New(st)

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(st)
	electionHandler := handlers.NewElectionHandler(st)
	candidateHandler := handlers.NewCandidateHandler(st)
	votingHandler := handlers.NewVotingHandler(l, m)
	resultsHandler := handlers.NewResultsHandler(l)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAdminKey(cfg.AdminKey, h)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	// Voters (registration is public)
	mux.HandleFunc("POST /voters", middleware.WithLogging(voterHandler.Register))
	mux.HandleFunc("GET /voters", middleware.WithLogging(voterHandler.List))
	mux.HandleFunc("PUT /voters/{id}", middleware.WithLogging(admin(voterHandler.Update)))
	mux.HandleFunc("DELETE /voters/{id}", middleware.WithLogging(admin(voterHandler.Delete)))

	// Elections
	mux.HandleFunc("POST /elections", middleware.WithLogging(admin(electionHandler.Create)))
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.List))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.Get))
	mux.HandleFunc("PUT /elections/{id}", middleware.WithLogging(admin(electionHandler.Update)))
	mux.HandleFunc("DELETE /elections/{id}", middleware.WithLogging(admin(electionHandler.Delete)))

	// Candidates
	mux.HandleFunc("POST /elections/{id}/candidates", middleware.WithLogging(admin(candidateHandler.Create)))
	mux.HandleFunc("GET /elections/{id}/candidates", middleware.WithLogging(candidateHandler.List))
	mux.HandleFunc("GET /candidates", middleware.WithLogging(candidateHandler.List))
	mux.HandleFunc("PUT /candidates/{id}", middleware.WithLogging(admin(candidateHandler.Update)))
	mux.HandleFunc("DELETE /candidates/{id}", middleware.WithLogging(admin(candidateHandler.Delete)))

	// Voting and results (public)
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Action dispatcher for clients of the api.php?action=... interface
	dispatcher := NewActionDispatcher()
	dispatcher.Handle("list_voters", http.MethodGet, voterHandler.List)
	dispatcher.Handle("create_voter", http.MethodPost, voterHandler.Register)
	dispatcher.Alias("register_voter", "create_voter")
	dispatcher.Handle("update_voter", http.MethodPost, admin(voterHandler.Update))
	dispatcher.Handle("delete_voter", http.MethodPost, admin(voterHandler.Delete))
	dispatcher.Handle("list_elections", http.MethodGet, electionHandler.List)
	dispatcher.Handle("create_election", http.MethodPost, admin(electionHandler.Create))
	dispatcher.Handle("update_election", http.MethodPost, admin(electionHandler.Update))
	dispatcher.Handle("delete_election", http.MethodPost, admin(electionHandler.Delete))
	dispatcher.Handle("list_candidates", http.MethodGet, candidateHandler.List)
	dispatcher.Handle("create_candidate", http.MethodPost, admin(candidateHandler.Create))
	dispatcher.Handle("update_candidate", http.MethodPost, admin(candidateHandler.Update))
	dispatcher.Handle("delete_candidate", http.MethodPost, admin(candidateHandler.Delete))
	dispatcher.Handle("cast_vote", http.MethodPost, votingHandler.CastVote)
	dispatcher.Handle("results", http.MethodGet, resultsHandler.GetResults)

	mux.HandleFunc("/api", middleware.WithLogging(dispatcher.ServeHTTP))
	mux.HandleFunc("/api.php", middleware.WithLogging(dispatcher.ServeHTTP))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("online-voting API v1"))
	})

	return mux
}
