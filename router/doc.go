// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the online voting API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, metrics.New())

CORS and request metrics are applied around the mux by the caller.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Voters:

	POST   /voters      - Register (public)
	GET    /voters      - List
	PUT    /voters/{id} - Update (admin)
	DELETE /voters/{id} - Delete (admin)

Elections (writes require X-Admin-Key when ADMIN_KEY is set):

	POST   /elections
	GET    /elections
	GET    /elections/{id}
	PUT    /elections/{id}
	DELETE /elections/{id}

Candidates:

	POST   /elections/{id}/candidates (admin)
	GET    /elections/{id}/candidates
	GET    /candidates?election_id=
	PUT    /candidates/{id} (admin)
	DELETE /candidates/{id} (admin)

Voting and results (public):

	POST /votes
	GET  /elections/{id}/results

# Action Dispatcher

Older clients post to a single endpoint and name the operation in the query:

	POST /api?action=cast_vote
	GET  /api?action=results&election_id=1

An unknown action, or a known action with the wrong method, returns
400 "Invalid action or method". /api.php is accepted as an alias path.
*/
package router
