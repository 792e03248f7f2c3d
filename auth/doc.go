// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards management routes with an optional admin key.

# Admin Key

When ADMIN_KEY is configured, requests that create, update or delete
elections and candidates, or update and delete voters, must send it:

	X-Admin-Key: <key>

	if err := auth.ValidateAdminKey(r.Header.Get(auth.AdminKeyHeader), cfg.AdminKey); err != nil {
		// 401
	}

Keys are compared with hmac.Equal over SHA-256 digests. An empty
configured key disables the check, matching deployments that run the API
behind their own access control.

# Voters

Voters are not authenticated. A voter is identified only by the email
given at registration.
*/
package auth
