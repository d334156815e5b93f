package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingName     = errors.New("name is required")
	ErrMissingSource   = errors.New("src_id is required")
	ErrMissingTarget   = errors.New("dst_id is required")
	ErrMissingUsername = errors.New("username is required")
	ErrMissingPassword = errors.New("password is required")
	ErrInvalidWeight   = errors.New("invalid weight")
)

// Sentinel errors for entity lookups.
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
	ErrUserNotFound = errors.New("user not found")
)

// ErrNoPath indicates the destination is unreachable from the source.
var ErrNoPath = errors.New("no path found")

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned for a bearer token that is malformed, expired,
// signed with the wrong key or algorithm, or names a user that no longer exists.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}

// ErrFieldTooShort returns an error indicating a field is below its minimum length.
func ErrFieldTooShort(field string, minLen int) error {
	return fmt.Errorf("%s must be at least %d characters", field, minLen)
}
