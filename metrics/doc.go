// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus counters for the API.

	m := metrics.New()
	mux.Handle("GET /metrics", m.Handler())
	handler := m.Instrument(mux)

# Collectors

  - voting_votes_cast_total{outcome}: accepted, already_voted, rejected, error
  - voting_http_requests_total{method,status}

Each Metrics owns its registry, so tests can build as many as they like.
*/
package metrics
