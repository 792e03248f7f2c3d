// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

// AdminKeyHeader carries the admin key on management requests.
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrMissingAdminKey = errors.New("admin key required")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// ValidateAdminKey checks the provided key against the configured one.
// An empty configured key disables the check.
func ValidateAdminKey(provided, configured string) error {
	if configured == "" {
		return nil
	}
	if provided == "" {
		return ErrMissingAdminKey
	}
	// Compare digests so the comparison time does not depend on key length
	if !hmac.Equal(digest(provided), digest(configured)) {
		return ErrInvalidAdminKey
	}
	return nil
}

func digest(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:]
}
