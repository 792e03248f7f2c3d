// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"
)

func TestValidateAdminKey(t *testing.T) {
	tests := []struct {
		name       string
		provided   string
		configured string
		wantErr    error
	}{
		{"disabled when unconfigured", "", "", nil},
		{"disabled ignores provided key", "anything", "", nil},
		{"matching key", "secret", "secret", nil},
		{"missing key", "", "secret", ErrMissingAdminKey},
		{"wrong key", "guess", "secret", ErrInvalidAdminKey},
		{"prefix of key", "secr", "secret", ErrInvalidAdminKey},
		{"case differs", "SECRET", "secret", ErrInvalidAdminKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.provided, tt.configured)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
