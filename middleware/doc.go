// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /voters", middleware.WithLogging(handler))

Logs request start and completion with a request ID, taken from
X-Request-ID or generated, and echoed on the response.

# Admin Guard

	middleware.RequireAdminKey(cfg.AdminKey, handler)

Returns 401 unless X-Admin-Key matches. An empty key disables the check.

# CORS Middleware

	server := http.Server{Handler: middleware.CORS(mux)}

Preflight OPTIONS requests are answered with 204.

# Request Data

ParseRequestData flattens JSON and form bodies into a RequestData map:

	data, err := middleware.ParseRequestData(w, r)
	email := data.String("email")
	electionID := data.Int64("election_id")
*/
package middleware
